package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/cleared-dev/redline/internal/model"
)

// Header is the CSV header for chart-of-accounts.csv.
const Header = "code,name,class,cash_flow"

const (
	numFields   = 4
	colCode     = 0
	colName     = 1
	colClass    = 2
	colCashFlow = 3
)

// ReadAccounts reads chart-of-accounts.csv.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes chart-of-accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colCode] = acct.Code
	row[colName] = acct.Name
	row[colClass] = string(acct.Class)
	row[colCashFlow] = string(acct.CashFlow)
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	code := strings.TrimSpace(record[colCode])
	if code == "" {
		return model.Account{}, fmt.Errorf("empty account code")
	}

	class := model.AccountClass(strings.ToUpper(strings.TrimSpace(record[colClass])))
	if !class.Valid() {
		return model.Account{}, fmt.Errorf("account %s: unknown class %q", code, record[colClass])
	}

	flow := model.CashFlowClass(strings.ToUpper(strings.TrimSpace(record[colCashFlow])))
	if !flow.Valid() {
		return model.Account{}, fmt.Errorf("account %s: unknown cash flow class %q", code, record[colCashFlow])
	}

	return model.Account{
		Code:     code,
		Name:     record[colName],
		Class:    class,
		CashFlow: flow,
	}, nil
}
