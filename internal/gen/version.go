package gen

// Version of the generator.
const Version = "v0.4.0"
