package cmake

// PackGenerator returns the CPack generator used on the host goos.
func PackGenerator(goos string) string {
	switch goos {
	case "windows":
		return "NSIS"
	case "darwin":
		return "DragNDrop"
	default:
		return "TGZ"
	}
}
