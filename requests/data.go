// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package requests

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// Data collects the parameters of one request, in submission order,
// together with any files they carry.
//
// A nil *Data behaves like an empty one, so optional parameter sets can
// be passed through without guards.
type Data struct {
	parameters []Parameter
}

// NewData builds a Data envelope from already-normalized parameters.
func NewData(parameters ...Parameter) *Data {
	return &Data{parameters: parameters}
}

// Add appends one raw key-value pair, normalizing it like FromInput.
func (d *Data) Add(name string, value any) {
	d.parameters = append(d.parameters, FromInput(name, value))
}

// Empty reports whether the envelope carries no parameters.
func (d *Data) Empty() bool {
	return d == nil || len(d.parameters) == 0
}

// ContainsFiles reports whether any parameter extracted upload files.
func (d *Data) ContainsFiles() bool {
	if d == nil {
		return false
	}

	for _, param := range d.parameters {
		if len(param.Files) > 0 {
			return true
		}
	}

	return false
}

// JSONParameters renders the parameters as a name to JSON-encoded value
// mapping, omitting parameters without a wire value.
func (d *Data) JSONParameters() (map[string]string, error) {
	if d == nil {
		return map[string]string{}, nil
	}

	params := make(map[string]string, len(d.parameters))

	for _, param := range d.parameters {
		value, present, err := param.jsonValue()
		if err != nil {
			return nil, err
		}

		if present {
			params[param.Name] = value
		}
	}

	return params, nil
}

// URLEncodedParameters percent-encodes JSONParameters as a query string.
func (d *Data) URLEncodedParameters() (string, error) {
	params, err := d.JSONParameters()
	if err != nil {
		return "", err
	}

	values := make(url.Values, len(params))
	for name, value := range params {
		values.Set(name, value)
	}

	return values.Encode(), nil
}

// ParametrizedURL attaches the URL-encoded parameters to rawURL.
func (d *Data) ParametrizedURL(rawURL string) (string, error) {
	encoded, err := d.URLEncodedParameters()
	if err != nil {
		return "", err
	}

	if encoded == "" {
		return rawURL, nil
	}

	return rawURL + "?" + encoded, nil
}

// JSONPayload renders JSONParameters as a JSON object.
func (d *Data) JSONPayload() ([]byte, error) {
	params, err := d.JSONParameters()
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON payload: %w", err)
	}

	return payload, nil
}

// FilePart is one file entry of a multipart request body.
type FilePart struct {
	FieldName string
	Filename  string
	Content   []byte
	MIMEType  string
}

// MultipartFiles materializes the upload table, one part per file element
// in parameter order. This is the only view that performs file I/O.
func (d *Data) MultipartFiles() ([]FilePart, error) {
	if d == nil {
		return nil, nil
	}

	var parts []FilePart

	for _, param := range d.parameters {
		for _, file := range param.Files {
			part, err := file.part(param.Name)
			if err != nil {
				return nil, err
			}

			parts = append(parts, part)
		}
	}

	return parts, nil
}
