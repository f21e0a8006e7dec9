package config

import "os"

// UploadPath returns the directory holding uploaded photo/signature assets.
func UploadPath() string {
	if p := os.Getenv("UPLOAD_PATH"); p != "" {
		return p
	}
	return "./public/uploads"
}

// FontPath returns the directory searched for the optional Devanagari font.
func FontPath() string {
	if p := os.Getenv("FONT_PATH"); p != "" {
		return p
	}
	return "./public/fonts"
}
