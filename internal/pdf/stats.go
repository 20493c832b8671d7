package pdf

// DirectoryStats summarizes the PDF files found in a directory
type DirectoryStats struct {
	Directory        string `json:"directory"`
	TotalFiles       int    `json:"total_files"`
	TotalSize        int64  `json:"total_size"`
	AverageFileSize  int64  `json:"average_file_size"`
	LargestFileName  string `json:"largest_file_name,omitempty"`
	LargestFileSize  int64  `json:"largest_file_size"`
	SmallestFileName string `json:"smallest_file_name,omitempty"`
	SmallestFileSize int64  `json:"smallest_file_size"`
}

// Summarize computes size statistics for files listed from directory
func Summarize(directory string, files []FileInfo) DirectoryStats {
	stats := DirectoryStats{Directory: directory, TotalFiles: len(files)}
	if len(files) == 0 {
		return stats
	}

	stats.SmallestFileSize = files[0].Size
	stats.SmallestFileName = files[0].Name
	for _, f := range files {
		stats.TotalSize += f.Size
		if f.Size > stats.LargestFileSize || stats.LargestFileName == "" {
			stats.LargestFileSize = f.Size
			stats.LargestFileName = f.Name
		}
		if f.Size < stats.SmallestFileSize {
			stats.SmallestFileSize = f.Size
			stats.SmallestFileName = f.Name
		}
	}
	stats.AverageFileSize = stats.TotalSize / int64(len(files))
	return stats
}
