package models

// PromptRecord describes one generation run. It is appended to the
// prompts.json history in the gist and written next to the image as a
// metadata sidecar, so the JSON field names follow the on-disk format.
type PromptRecord struct {
	Style       string `json:"art_style"       parquet:"art_style"`
	Concept     string `json:"art_concept"     parquet:"art_concept"`
	GistURL     string `json:"gist_url,omitempty"   parquet:"gist_url,optional"`
	ImageFile   string `json:"image_file,omitempty" parquet:"image_file,optional"`
	GeneratedAt string `json:"generated_at"    parquet:"generated_at"`
	Model       string `json:"model"           parquet:"model"`
}

// GalleryEntry pairs a generated image on disk with its prompt record.
type GalleryEntry struct {
	ImageFile string       `json:"image_file"`
	ImageURL  string       `json:"image_url"`
	Record    PromptRecord `json:"record"`
}
