package config

import "time"

const AppName = "gotags"
const Version = "0.3.0"
const DefaultConfigFileName = "config.toml"

// Status line
const StatusBarHeight = 1
const MessageTimeout = 3 * time.Second

// Plugin settings defaults
const DefaultORMTag = "orm"
