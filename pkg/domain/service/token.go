package service

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

const invoiceNumberLength = 10

// invoiceNumber derives the short purchase reference from the buyer identity,
// the checkout instant and the product id. The seed contains only public
// inputs; the derivation is kept as-is for invoice and token compatibility.
func invoiceNumber(buyerEmail string, at time.Time, productID string) string {
	seed := buyerEmail + "-" + unixSeconds(at) + "-" + productID
	sum := sha256.Sum256([]byte(seed))
	return strings.ToUpper(hex.EncodeToString(sum[:])[:invoiceNumberLength])
}

// downloadToken derives the full-length download credential. Unlike the
// invoice number it is not truncated: the whole 64-char digest goes into the
// download URL.
func downloadToken(invoiceNumber, buyerEmail string) string {
	sum := sha256.Sum256([]byte(invoiceNumber + "-" + buyerEmail))
	return hex.EncodeToString(sum[:])
}

func downloadPath(token string) string {
	return "/download/" + token
}

// unixSeconds renders the instant as seconds with fractional part, the salt
// that makes repeated checkouts of the same product produce distinct invoices.
func unixSeconds(at time.Time) string {
	return strconv.FormatFloat(float64(at.UnixNano())/float64(time.Second), 'f', -1, 64)
}
