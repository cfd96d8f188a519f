package api

// Letter is a saved document as returned by the letters backend. The
// backend id is the document's identity; DriveFileID correlates it with
// the exported Google Drive file after a successful save.
type Letter struct {
	ID            string   `json:"_id"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	DriveFileID   string   `json:"googleDriveId,omitempty"`
	WebViewLink   string   `json:"webViewLink,omitempty"`
	Collaborators []string `json:"collaborators,omitempty"`
}

// SaveResult is the backend's response to a create or update.
type SaveResult struct {
	FileID      string `json:"fileId"`
	WebViewLink string `json:"webViewLink"`
}

// DriveFile is one item of a Drive listing. A DriveFile whose MimeType
// is FolderMimeType is a container; everything else is a leaf.
type DriveFile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MimeType    string `json:"mimeType"`
	CreatedTime string `json:"createdTime"`
	WebViewLink string `json:"webViewLink,omitempty"`
}

const (
	FolderMimeType      = "application/vnd.google-apps.folder"
	DocumentMimeType    = "application/vnd.google-apps.document"
	SpreadsheetMimeType = "application/vnd.google-apps.spreadsheet"
)

// IsFolder reports whether the file is a Drive folder.
func (f DriveFile) IsFolder() bool {
	return f.MimeType == FolderMimeType
}
