package sqlite

import "strings"

// cloudSyncMarkers are path fragments identifying folders managed by a file
// sync service. Compared lowercased with forward slashes; "/onedrive -"
// matches the business-account variants like "OneDrive - Acme Corp".
var cloudSyncMarkers = []string{
	"/dropbox/",
	"/onedrive/",
	"/onedrive -",
	"/icloud drive/",
	"/icloudrive/",
	"/google drive/",
	"/my drive/",
	"/googledrivefs/",
}

// DetectCloudSync reports whether path points inside a cloud-synced folder.
// The check is a pure string predicate: case-insensitive and tolerant of
// both slash styles, no filesystem access.
func DetectCloudSync(path string) bool {
	p := strings.ToLower(strings.ReplaceAll(path, "\\", "/"))
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	for _, marker := range cloudSyncMarkers {
		if strings.Contains(p, marker) {
			return true
		}
	}
	return false
}
