package utils

// SafeError returns error message or default if nil
func SafeError(err error, defaultMsg string) string {
	if err != nil {
		return err.Error()
	}
	return defaultMsg
}
