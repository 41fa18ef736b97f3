// Package constants provides shared constants used throughout the wilayah codebase.
// This includes matching thresholds, limits, file permissions and the on-disk
// layout of a region dataset, values that should be consistent across the application.
package constants

// Matching thresholds. Each matching context owns one threshold; call sites
// never derive their own.
const (
	// RegionThreshold is the minimum similarity ratio for a regency or city
	// name to match a candidate within one province. Province candidate sets
	// hold many near-miss names, so the bar is strict.
	RegionThreshold = 0.80

	// ProvinceThreshold is the minimum similarity ratio for a province name to
	// match a reference province. The candidate set is small (34-38 entries).
	ProvinceThreshold = 0.70

	// MinThreshold and MaxThreshold bound any configured threshold.
	MinThreshold = 0.0
	MaxThreshold = 1.0
)

// Limit constants define various limits and capacities
const (
	// SampleSize is the number of sub-region names sampled when a province
	// identifier has to be resolved by its contents.
	SampleSize = 10

	// DefaultWorkers is the default number of region files processed concurrently.
	DefaultWorkers = 1

	// MaxWorkers is the maximum number of concurrent file workers.
	MaxWorkers = 64

	// MinCSVColumns is the number of columns a reference row needs: No, Province, Region.
	MinCSVColumns = 3
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Dataset layout constants describe where a region dataset keeps its files,
// relative to the dataset root.
const (
	// ReferenceCSVPath is the authoritative reference table.
	ReferenceCSVPath = "referensi/master_prov_kabupaten_kota.csv"

	// ProvinceFile is the primary list of provinces.
	ProvinceFile = "provinsi.json"

	// ProvinceFileAlt is the legacy spelling of the province list, kept in sync when present.
	ProvinceFileAlt = "propinsi.json"

	// RegencyDir holds regency record files.
	RegencyDir = "kabupaten"

	// CityDir holds city record files.
	CityDir = "kota"

	// JSONExt is the extension of record files.
	JSONExt = ".json"

	// JSONIndent is the indentation used when writing record files.
	JSONIndent = "  "

	// NameField is the JSON field holding a region name.
	NameField = "nama"

	// IDField is the JSON field holding a region identifier.
	IDField = "id"
)

// Reference table markers
const (
	// PlaceholderMarker marks residual "other region" rows in the reference
	// table ("Kabupaten/Kota Lainnya"). Such rows never become candidates.
	PlaceholderMarker = "Lainnya"
)

// Default values
const (
	// DefaultConfigName is the base name of the optional config file.
	DefaultConfigName = ".wilayah"

	// DefaultRoot is the default dataset root.
	DefaultRoot = "."

	// DefaultDuplicatePolicy decides duplicate normalized keys in the reference table.
	DefaultDuplicatePolicy = "first"
)

// DefaultAliases are the alias tokens tried when exact and fuzzy matching fail.
// "YAPEN" catches Kepulauan Yapen, referenced as Yapen-Waropen by the reference table.
func DefaultAliases() []string {
	return []string{"YAPEN"}
}
