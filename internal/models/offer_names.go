package models

// knownOfferNames is the closed set of lender names the catalog accepts.
// Extending it is a deploy-time change; ingestion rejects anything else.
var knownOfferNames = map[string]struct{}{
	"Loanplus":      {},
	"Moneyveo":      {},
	"MyCredit":      {},
	"CreditKasa":    {},
	"Dinero":        {},
	"Alexcredit":    {},
	"ShvidkoGroshi": {},
	"Miloan":        {},
	"CreditPlus":    {},
	"Selfycredit":   {},
}

func IsKnownOfferName(name string) bool {
	_, ok := knownOfferNames[name]
	return ok
}
