package constants

// AppName is used for display, the keyring service name, and env var prefixes.
const AppName = "yieldscope"

// ConfigDirName is created under the user's home directory.
const ConfigDirName = ".yieldscope"

const ConfigFileName = "config.yaml"
