package config

import "time"

const AppName = "seek"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "seek.log"

// UI layout
const StatusBarHeight = 1

// Status bar
const MessageTimeout = 4 * time.Second

// Editor defaults
const DefaultTabWidth = 4
const DefaultScrollOff = 3
const SystemClipboard = false

// Search defaults
const LiteralSearch = false
const DefaultMaxMatches = 0 // no cap

// File watching
const WatchFile = true
const WatchSettle = 100 * time.Millisecond
