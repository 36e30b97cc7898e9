package soapapi

import (
	"encoding/xml"
	"errors"
	"io"
	"net/http"
)

const (
	envelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"
	// Namespace qualifies every request and response payload.
	Namespace = "http://streaming.com/music/soap"
)

var (
	errMalformedEnvelope = errors.New("malformed SOAP envelope")
	errMalformedRequest  = errors.New("malformed request")
)

type responseEnvelope struct {
	XMLName xml.Name     `xml:"soapenv:Envelope"`
	NS      string       `xml:"xmlns:soapenv,attr"`
	Body    responseBody `xml:"soapenv:Body"`
}

type responseBody struct {
	Payload any    `xml:",omitempty"`
	Fault   *fault `xml:"soapenv:Fault,omitempty"`
}

type fault struct {
	Code   string `xml:"faultcode"`
	String string `xml:"faultstring"`
}

// readPayload advances dec to the first element inside the SOAP Body and
// returns it. Headers are skipped.
func readPayload(dec *xml.Decoder) (xml.StartElement, error) {
	var sawEnvelope, inBody bool
	for {
		tok, err := dec.Token()
		if err != nil {
			return xml.StartElement{}, errMalformedEnvelope
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case !sawEnvelope:
				if t.Name.Space != envelopeNS || t.Name.Local != "Envelope" {
					return xml.StartElement{}, errMalformedEnvelope
				}
				sawEnvelope = true
			case !inBody:
				if t.Name.Space == envelopeNS && t.Name.Local == "Body" {
					inBody = true
					continue
				}
				if err := dec.Skip(); err != nil {
					return xml.StartElement{}, errMalformedEnvelope
				}
			default:
				return t, nil
			}
		case xml.EndElement:
			if inBody {
				return xml.StartElement{}, errors.New("empty SOAP body")
			}
		}
	}
}

func writeEnvelope(w http.ResponseWriter, status int, body responseBody) {
	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, xml.Header)

	enc := xml.NewEncoder(w)
	_ = enc.Encode(responseEnvelope{NS: envelopeNS, Body: body})
}

func writeFault(w http.ResponseWriter, code, message string) {
	writeEnvelope(w, http.StatusInternalServerError, responseBody{
		Fault: &fault{Code: "soapenv:" + code, String: message},
	})
}
