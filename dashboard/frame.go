// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"bytes"
	"fmt"

	"github.com/absmach/rigdash/pkg/errors"
)

// Delimiter separates the topic from the JSON document in a wire frame.
const Delimiter = '|'

// Split separates a wire frame "<topic>|<json>" on the first delimiter only,
// so the payload may itself contain the delimiter.
func Split(raw []byte) (string, []byte, error) {
	topic, payload, ok := bytes.Cut(raw, []byte{Delimiter})
	if !ok {
		return "", nil, errors.Wrap(ErrFrameFormat, fmt.Errorf("frame of %d bytes", len(raw)))
	}

	return string(topic), payload, nil
}

// Join builds a wire frame from a topic and a JSON document.
func Join(topic string, payload []byte) []byte {
	frame := make([]byte, 0, len(topic)+1+len(payload))
	frame = append(frame, topic...)
	frame = append(frame, Delimiter)
	return append(frame, payload...)
}
