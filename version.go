package patchbay

// Version is the library version, overridable at build time via
// -ldflags "-X github.com/tobheim/patchbay.Version=...".
var Version = "0.3.0"
