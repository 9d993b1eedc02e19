package sms

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
)

// ErrNotFound is returned by ReadFile when the backup file does not exist.
var ErrNotFound = errors.New("sms backup file not found")

// ParseError reports a backup document that is not well-formed XML.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing sms backup %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ReadFile reads every <sms> record of the backup at path, in document order.
func ReadFile(path string) ([]RawMessage, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil, err
	}
	defer file.Close()

	return read(file, path)
}

// Read reads every <sms> record from r, in document order.
func Read(r io.Reader) ([]RawMessage, error) {
	return read(r, "input")
}

func read(r io.Reader, source string) ([]RawMessage, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	messages, err := decodeMessages(decoder)
	if err == nil {
		err = checkTrailingContent(decoder)
	}
	if err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}
	return messages, nil
}

// decodeMessages walks the document up to the end of the root element and collects its
// direct, unprefixed <sms> children.
func decodeMessages(decoder *xml.Decoder) ([]RawMessage, error) {
	messages := make([]RawMessage, 0)
	scopes := newNamespaceScopes()
	depth := 0
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return nil, errors.New("no root element found")
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if err := checkDuplicateAttrs(t); err != nil {
				return nil, err
			}
			if err := scopes.push(t); err != nil {
				return nil, err
			}
			depth++
			if depth == 2 && t.Name.Space == "" && t.Name.Local == "sms" {
				messages = append(messages, newRawMessage(t.Attr))
			}
		case xml.EndElement:
			scopes.pop()
			depth--
			if depth == 0 {
				return messages, nil
			}
		case xml.CharData:
			if depth == 0 && strings.TrimSpace(string(t)) != "" {
				return nil, errors.New("text before document element")
			}
		}
	}
}

func checkDuplicateAttrs(element xml.StartElement) error {
	seen := make(map[xml.Name]struct{}, len(element.Attr))
	for _, attr := range element.Attr {
		if _, ok := seen[attr.Name]; ok {
			return fmt.Errorf("duplicate attribute %s on <%s>", attr.Name.Local, element.Name.Local)
		}
		seen[attr.Name] = struct{}{}
	}
	return nil
}

const xmlNamespaceURL = "http://www.w3.org/XML/1998/namespace"

// namespaceScopes tracks the namespaces declared by the open elements. The decoder leaves an
// undeclared prefix in Name.Space, so any space not in scope is an unbound prefix.
type namespaceScopes struct {
	declared []map[string]struct{}
}

func newNamespaceScopes() *namespaceScopes {
	return &namespaceScopes{}
}

func (s *namespaceScopes) push(element xml.StartElement) error {
	urls := make(map[string]struct{})
	for _, attr := range element.Attr {
		if attr.Name.Space == "xmlns" || (attr.Name.Space == "" && attr.Name.Local == "xmlns") {
			urls[attr.Value] = struct{}{}
		}
	}
	s.declared = append(s.declared, urls)

	if !s.bound(element.Name.Space) {
		return fmt.Errorf("unbound prefix %s on <%s>", element.Name.Space, element.Name.Local)
	}
	for _, attr := range element.Attr {
		if attr.Name.Space == "xmlns" {
			continue
		}
		if !s.bound(attr.Name.Space) {
			return fmt.Errorf("unbound prefix %s on attribute %s", attr.Name.Space, attr.Name.Local)
		}
	}
	return nil
}

func (s *namespaceScopes) pop() {
	if len(s.declared) > 0 {
		s.declared = s.declared[:len(s.declared)-1]
	}
}

func (s *namespaceScopes) bound(space string) bool {
	if space == "" || space == xmlNamespaceURL {
		return true
	}
	for i := len(s.declared) - 1; i >= 0; i-- {
		if _, ok := s.declared[i][space]; ok {
			return true
		}
	}
	return false
}

// newRawMessage reads the unprefixed record attributes, ignoring the others.
func newRawMessage(attrs []xml.Attr) RawMessage {
	var message RawMessage
	for _, attr := range attrs {
		if attr.Name.Space != "" {
			continue
		}
		switch attr.Name.Local {
		case "address":
			message.Address = attr.Value
		case "date":
			message.Date = attr.Value
		case "readable_date":
			message.ReadableDate = attr.Value
		case "body":
			message.Body = attr.Value
		}
	}
	return message
}

// checkTrailingContent rejects anything but whitespace, comments and processing
// instructions after the root element.
func checkTrailingContent(decoder *xml.Decoder) error {
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if strings.TrimSpace(string(t)) != "" {
				return errors.New("junk after document element")
			}
		default:
			return errors.New("junk after document element")
		}
	}
}
