// Package file provides the filesystem access used by configuration dialects
// and by file discovery.
//
// Read returns the raw bytes of a configuration file, Write overwrites it in
// place, Exists checks for presence and Expand resolves "~" and environment
// variables in candidate paths.
//
// Usage:
//
//	data, err := file.Read("/etc/myapp.rc")
//	if err != nil {
//	    // Handle error: file not found, permission denied, path is directory, etc.
//	}
//
// Error Handling:
//   - Errors include the filepath for easier debugging
//   - Use errors.Is(err, file.ErrPathIsDirectory) to check for directory errors
//   - Use errors.Is(err, fs.ErrNotExist) to check for missing files
//
// Writes are plain overwrites of the target file. No locking is performed and
// concurrent writers are not supported.
package file
