// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/absmach/rigdash/pkg/errors"
)

var errNotNumeric = errors.New("value is not numeric")

// Number is a payload scalar. It accepts a JSON number, a numeric string
// or null, which reads as zero.
type Number float64

// Float returns n as float64.
func (n Number) Float() float64 {
	return float64(n)
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	var f float64
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errors.Wrap(errNotNumeric, err)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return errors.Wrap(errNotNumeric, err)
		}
		f = v
	} else if err := json.Unmarshal(data, &f); err != nil {
		return errors.Wrap(errNotNumeric, err)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return errors.Wrap(errNotNumeric, fmt.Errorf("%s is not finite", data))
	}
	*n = Number(f)

	return nil
}
