package config

// DefaultBaseDir is where step and hook definitions are loaded from
// when --basedir is not given.
const DefaultBaseDir = "steps"
