package pipeline

// Config holds configuration for the reconciliation pipeline and for where the
// query service finds its artifact.
type Config struct {
	// EnrolmentDir holds the anchor dataset files.
	EnrolmentDir string `mapstructure:"enrolment_dir" default:"data/api_data_aadhar_enrolment"`
	// DemographicDir holds the demographic dataset files.
	DemographicDir string `mapstructure:"demographic_dir" default:"data/api_data_aadhar_demographic"`
	// BiometricDir holds the biometric dataset files.
	BiometricDir string `mapstructure:"biometric_dir" default:"data/api_data_aadhar_biometric"`
	// OutputFile is the reconciled artifact written by every run.
	OutputFile string `mapstructure:"output_file" default:"processed_records.csv"`
	// Workers is the number of workers used to assign record identifiers.
	Workers int `mapstructure:"workers" default:"1"`
	// PublishStorage also uploads the artifact to object storage.
	PublishStorage bool `mapstructure:"publish_storage" default:"false"`
	// ObjectName is the object key used when publishing to storage.
	ObjectName string `mapstructure:"object_name" default:"processed/processed_records.csv"`
	// MirrorDatabase also replaces a SQL table with the artifact rows.
	MirrorDatabase bool `mapstructure:"mirror_database" default:"false"`
	// MirrorTable is the SQL table name used when mirroring.
	MirrorTable string `mapstructure:"mirror_table" default:"processed_records"`
	// Source selects where the query service reads the artifact from (file, storage).
	Source string `mapstructure:"source" default:"file"`
}

const (
	SourceFile    = "file"
	SourceStorage = "storage"
)

// IsValidSource checks if the configured artifact source is supported.
func (c Config) IsValidSource() bool {
	switch c.Source {
	case SourceFile, SourceStorage:
		return true
	default:
		return false
	}
}
