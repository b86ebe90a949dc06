package domain

import (
	"fmt"
	"strings"
	"unicode"
)

func onlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

func allSame(s string) bool {
	return strings.Count(s, s[:1]) == len(s)
}

// checkDigit computes a mod-11 verification digit of the leading digits.
func checkDigit(digits string, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += int(digits[i]-'0') * w
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}

func descending(from, n int) []int {
	w := make([]int, n)
	for i := range w {
		w[i] = from - i
	}
	return w
}

// NormalizeCPF strips formatting and validates the check digits. It returns the
// 11 bare digits.
func NormalizeCPF(raw string) (string, error) {
	cpf := onlyDigits(raw)
	if len(cpf) != 11 {
		return "", fmt.Errorf("CPF must have 11 digits")
	}
	if allSame(cpf) {
		return "", fmt.Errorf("invalid CPF")
	}
	if checkDigit(cpf, descending(10, 9)) != int(cpf[9]-'0') ||
		checkDigit(cpf, descending(11, 10)) != int(cpf[10]-'0') {
		return "", fmt.Errorf("invalid CPF")
	}
	return cpf, nil
}

// FormatCPF renders XXX.XXX.XXX-XX.
func FormatCPF(cpf string) string {
	if len(cpf) != 11 {
		return cpf
	}
	return cpf[:3] + "." + cpf[3:6] + "." + cpf[6:9] + "-" + cpf[9:]
}

var (
	cnpjFirstWeights  = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjSecondWeights = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// NormalizeDocument accepts either a CPF or a CNPJ and returns its digits.
func NormalizeDocument(raw string) (string, error) {
	doc := onlyDigits(raw)
	switch len(doc) {
	case 11:
		return NormalizeCPF(doc)
	case 14:
		if allSame(doc) ||
			checkDigit(doc, cnpjFirstWeights) != int(doc[12]-'0') ||
			checkDigit(doc, cnpjSecondWeights) != int(doc[13]-'0') {
			return "", fmt.Errorf("invalid CNPJ")
		}
		return doc, nil
	default:
		return "", fmt.Errorf("document must be a CPF (11 digits) or CNPJ (14 digits)")
	}
}

// NormalizePhone validates a Brazilian landline (10 digits) or mobile (11 digits,
// third digit 9) number with area code 11..99.
func NormalizePhone(raw string) (string, error) {
	phone := onlyDigits(raw)
	if len(phone) != 10 && len(phone) != 11 {
		return "", fmt.Errorf("phone must have 10 or 11 digits")
	}
	if phone[0] == '0' || phone[:2] == "10" {
		return "", fmt.Errorf("invalid area code")
	}
	if len(phone) == 11 && phone[2] != '9' {
		return "", fmt.Errorf("mobile numbers must start with 9")
	}
	return phone, nil
}

// FormatPhone renders (XX) XXXXX-XXXX or (XX) XXXX-XXXX.
func FormatPhone(phone string) string {
	switch len(phone) {
	case 11:
		return "(" + phone[:2] + ") " + phone[2:7] + "-" + phone[7:]
	case 10:
		return "(" + phone[:2] + ") " + phone[2:6] + "-" + phone[6:]
	default:
		return phone
	}
}
