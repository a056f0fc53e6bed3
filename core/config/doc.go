// Package config provides configuration management for the records pipeline and
// the analytics server.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults live in the `default` struct tags of each section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP port, API key, CORS origins, search limit
//   - Pipeline: source directories, artifact path, workers, optional sinks
//   - Storage: S3/MinIO credentials and bucket settings
//   - Database: MySQL/SQLite connection details for the mirror table
//   - Log: Logging level and format
//
// Environment variables map onto nested keys by replacing dots with
// underscores, e.g. PIPELINE_OUTPUT_FILE -> pipeline.output_file.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Pipeline.OutputFile)
package config
