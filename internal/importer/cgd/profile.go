package cgd

// amountMode determines how the spent amount is found in a row.
type amountMode int

const (
	// amountSigned means one signed column where debits are negative ("-10,00").
	amountSigned amountMode = iota
	// amountDebit means a separate, unsigned debit column ("Débito").
	amountDebit
)

// Profile describes the column layout of one CGD CSV export.
type Profile struct {
	Name       string
	DateCol    string
	DescCol    string
	AmountMode amountMode
	AmountCol  string
}

func (p Profile) requiredCols() []string {
	return []string{p.DateCol, p.DescCol, p.AmountCol}
}

// profiles are tried in order. The card profile has the most specific header.
var profiles = []Profile{
	{
		Name:       "cartão",
		DateCol:    "Data",
		DescCol:    "Descrição",
		AmountMode: amountDebit,
		AmountCol:  "Débito",
	},
	{
		Name:       "extrato",
		DateCol:    "Data mov.",
		DescCol:    "Descrição",
		AmountMode: amountSigned,
		AmountCol:  "Movimento",
	},
	{
		Name:       "conta",
		DateCol:    "Data mov.",
		DescCol:    "Descrição",
		AmountMode: amountSigned,
		AmountCol:  "Montante",
	},
}
