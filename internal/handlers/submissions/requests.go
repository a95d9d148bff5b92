package submissions

// CodeRequest is the body of run and submit
type CodeRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

// LanguagesResponse lists the accepted language names
type LanguagesResponse struct {
	Languages []string `json:"languages"`
}
