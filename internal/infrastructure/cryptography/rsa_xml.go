package cryptography

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/awnumar/memguard"

	"rsa_key_service/internal/domain/keys"
)

// ToXMLString serializes the key to the <RSAKeyValue> encoding: base64
// element contents in the fixed order Modulus, Exponent, [P, Q, DP, DQ,
// InverseQ], [D]. The ordering and conditional presence are contract
// points for consumers parsing the same encoding produced elsewhere.
// Temporarily exported private byte arrays are wiped before this method
// returns, on success and failure alike.
func (e *rsaKeyEngine) ToXMLString(includePrivate bool) (string, error) {
	params, err := e.ExportParameters(includePrivate)
	if err != nil {
		return "", err
	}
	defer wipePrivateParameters(params)

	var sb strings.Builder
	sb.WriteString("<RSAKeyValue>")
	writeKeyElement(&sb, "Modulus", params.Modulus)
	writeKeyElement(&sb, "Exponent", params.Exponent)
	if includePrivate {
		writeKeyElement(&sb, "P", params.P)
		writeKeyElement(&sb, "Q", params.Q)
		writeKeyElement(&sb, "DP", params.DP)
		writeKeyElement(&sb, "DQ", params.DQ)
		writeKeyElement(&sb, "InverseQ", params.InverseQ)
		writeKeyElement(&sb, "D", params.D)
	}
	sb.WriteString("</RSAKeyValue>")
	return sb.String(), nil
}

// writeKeyElement appends <name>base64(value)</name>, skipping nil values.
func writeKeyElement(sb *strings.Builder, name string, value []byte) {
	if value == nil {
		return
	}
	sb.WriteString("<")
	sb.WriteString(name)
	sb.WriteString(">")
	sb.WriteString(base64.StdEncoding.EncodeToString(value))
	sb.WriteString("</")
	sb.WriteString(name)
	sb.WriteString(">")
}

// wipePrivateParameters overwrites the private byte arrays of an export
// so failed or completed serializations leave no plaintext private key
// bytes behind in temporary buffers.
func wipePrivateParameters(params *keys.RSAParameters) {
	if params == nil {
		return
	}
	for _, b := range [][]byte{params.D, params.P, params.Q, params.DP, params.DQ, params.InverseQ} {
		memguard.WipeBytes(b)
	}
}

// rsaKeyValueDoc mirrors the <RSAKeyValue> document for parsing.
type rsaKeyValueDoc struct {
	XMLName  xml.Name `xml:"RSAKeyValue"`
	Modulus  string   `xml:"Modulus"`
	Exponent string   `xml:"Exponent"`
	P        string   `xml:"P"`
	Q        string   `xml:"Q"`
	DP       string   `xml:"DP"`
	DQ       string   `xml:"DQ"`
	InverseQ string   `xml:"InverseQ"`
	D        string   `xml:"D"`
}

// FromXMLString parses an <RSAKeyValue> document and imports the
// contained parameters. The document is decoded in full before any state
// changes, so a malformed input leaves the engine untouched.
func (e *rsaKeyEngine) FromXMLString(xmlKey string) error {
	if e.disposed {
		return keys.ErrDisposed
	}

	var doc rsaKeyValueDoc
	if err := xml.Unmarshal([]byte(xmlKey), &doc); err != nil {
		return fmt.Errorf("%w: %v", keys.ErrMalformedKeyXML, err)
	}

	params := &keys.RSAParameters{}
	fields := []struct {
		name string
		text string
		dst  *[]byte
	}{
		{"Modulus", doc.Modulus, &params.Modulus},
		{"Exponent", doc.Exponent, &params.Exponent},
		{"P", doc.P, &params.P},
		{"Q", doc.Q, &params.Q},
		{"DP", doc.DP, &params.DP},
		{"DQ", doc.DQ, &params.DQ},
		{"InverseQ", doc.InverseQ, &params.InverseQ},
		{"D", doc.D, &params.D},
	}
	for _, f := range fields {
		if f.text == "" {
			continue
		}
		decoded, err := base64.StdEncoding.DecodeString(f.text)
		if err != nil {
			wipePrivateParameters(params)
			return fmt.Errorf("%w: bad base64 in %s", keys.ErrMalformedKeyXML, f.name)
		}
		*f.dst = decoded
	}

	defer wipePrivateParameters(params)
	return e.ImportParameters(params)
}
