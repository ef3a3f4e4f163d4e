package logger

// Component-specific logger functions

// Migration returns a logger for schema migration operations
func Migration() Logger {
	return WithField("component", "migration")
}

// CLI returns a logger for CLI operations
func CLI() Logger {
	return WithField("component", "cli")
}

// DB returns a logger for database statements
func DB() Logger {
	return WithField("component", "db")
}

// Store returns a logger for restaurant store operations
func Store() Logger {
	return WithField("component", "store")
}

// Config returns a logger for configuration loading
func Config() Logger {
	return WithField("component", "config")
}
