package eberban

// Version is the library release tag reported by the CLI.
const Version = "0.1.0"
