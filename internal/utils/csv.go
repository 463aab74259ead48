package utils

import (
	"bufio"
	"io"
	"strings"
)

// WriteQuotedCSV writes rows as CSV with every field enclosed in double quotes and
// embedded quotes doubled (RFC 4180). Lines end with CRLF.
func WriteQuotedCSV(w io.Writer, rows [][]string) error {
	bw := bufio.NewWriter(w)
	for _, row := range rows {
		for i, field := range row {
			if i > 0 {
				if err := bw.WriteByte(','); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(quoteCSVField(field)); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString("\r\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func quoteCSVField(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
