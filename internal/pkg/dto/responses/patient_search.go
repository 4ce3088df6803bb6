package responses

type PatientSearch struct {
	Total    int `json:"total"`
	Returned int `json:"returned"`
}
