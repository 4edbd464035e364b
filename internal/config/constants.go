package config

import "time"

// Base application details
const AppName = "quill"
const ThemesDirName = "themes"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "quill.log"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

const DefaultTabWidth = 4
const DefaultScrollOff = 3
const SystemClipboard = true
const DefaultUITheme = "Quill Dark"
const DefaultAutosaveInterval = 30 * time.Second
const MinAutosaveInterval = time.Second
