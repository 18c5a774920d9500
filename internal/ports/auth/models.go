package auth

// Claims representa la información extraída del token por el IAM de la clínica.
type Claims struct {
	UserID   string
	Email    string
	Role     string // staff | doctor | admin (vocabulario del IAM, opaco acá)
	TenantID string
}
