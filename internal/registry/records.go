package registry

// InstalledSentinel is the Installed value the client writes for a title that
// is currently on disk.
const InstalledSentinel int64 = 1

// InstallStateDamaged marks an install row whose ASIN decoded but whose other
// columns did not. The row still counts toward the ASIN's install records.
const InstallStateDamaged int64 = -1

// Product is one catalog row from the product registry.
type Product struct {
	ID              string
	DateTime        string
	Background      string
	Background2     string
	IsDeveloper     int64
	ASIN            string
	ASINVersion     string
	Description     string
	Domain          string
	IconURL         string
	ProductIDStr    string
	Line            string
	Publisher       string
	SKU             string
	Title           string
	ScreenshotsJSON string
	State           string
	VideosJSON      string
}

// Install is one row from the install registry.
type Install struct {
	ID                              string
	InstallDate                     string
	InstallDirectory                string
	InstallVersion                  string
	InstallVersionName              string
	Installed                       int64
	LastKnownLatestVersion          string
	LastKnownLatestVersionTimestamp string
	LastUpdated                     string
	LastPlayed                      string
	ASIN                            string
	ProductTitle                    string
}

// Damaged reports whether the row only carries its ASIN.
func (i Install) Damaged() bool {
	return i.Installed == InstallStateDamaged
}

// IsInstalled reports whether the row carries the installed sentinel.
func (i Install) IsInstalled() bool {
	return i.Installed == InstalledSentinel
}

// Snapshot holds both record sets read in one pass.
type Snapshot struct {
	Products []Product
	Installs []Install
}
