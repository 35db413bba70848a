package giant

// Version is the interpreter release tag reported by the CLI.
const Version = "0.3.0"
