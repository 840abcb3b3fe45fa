package model

const (
	ClaimUsername = "Username"
	ClaimEmail    = "email"
	ClaimRole     = "role"
	// ClaimUserID : идентификатор пользователя, добавляется при выдаче токена
	ClaimUserID = "uid"
)

// Claim : пара (тип, значение), которая попадает в access токен
type Claim struct {
	Type  string `db:"claim_type" json:"type"`
	Value string `db:"claim_value" json:"value"`
}

// FindClaim : первое значение claim данного типа
func FindClaim(claims []Claim, claimType string) (string, bool) {
	for _, c := range claims {
		if c.Type == claimType {
			return c.Value, true
		}
	}
	return "", false
}

// HasRole : есть ли среди claims хотя бы одна из ролей
func HasRole(claims []Claim, roles ...string) bool {
	for _, c := range claims {
		if c.Type != ClaimRole {
			continue
		}
		for _, r := range roles {
			if c.Value == r {
				return true
			}
		}
	}
	return false
}
