package dto

type UploadAgreementResponse struct {
	DocumentID string `json:"document_id"`
	Pages      int    `json:"pages"`
	Chunks     int    `json:"chunks"`
}
