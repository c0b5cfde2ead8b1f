// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/absmach/rigdash"
	"github.com/absmach/rigdash/dashboard"
	"github.com/absmach/rigdash/internal/api"
	"github.com/absmach/rigdash/pkg/apiutil"
	"github.com/absmach/rigdash/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ rigdash.Response = (*response)(nil)

type response struct {
	code    int
	headers map[string]string
	empty   bool
	Value   string `json:"value,omitempty"`
}

func (res response) Code() int                  { return res.code }
func (res response) Headers() map[string]string { return res.headers }
func (res response) Empty() bool                { return res.empty }

func TestEncodeResponse(t *testing.T) {
	cases := []struct {
		desc   string
		resp   interface{}
		code   int
		header map[string]string
		body   string
	}{
		{
			desc:   "response with body",
			resp:   response{code: http.StatusOK, headers: map[string]string{"X-Test": "yes"}, Value: "7.1"},
			code:   http.StatusOK,
			header: map[string]string{"X-Test": "yes", "Content-Type": api.ContentType},
			body:   "{\"value\":\"7.1\"}\n",
		},
		{
			desc:   "empty response",
			resp:   response{code: http.StatusNoContent, empty: true},
			code:   http.StatusNoContent,
			header: map[string]string{"Content-Type": api.ContentType},
		},
		{
			desc: "plain value",
			resp: []float64{1, 2},
			code: http.StatusOK,
			body: "[1,2]\n",
		},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		err := api.EncodeResponse(context.Background(), rec, tc.resp)
		require.Nil(t, err, tc.desc)
		assert.Equal(t, tc.code, rec.Code, tc.desc)
		for k, v := range tc.header {
			assert.Equal(t, v, rec.Header().Get(k), tc.desc)
		}
		assert.Equal(t, tc.body, rec.Body.String(), tc.desc)
	}
}

func TestEncodeError(t *testing.T) {
	cases := []struct {
		desc string
		err  error
		code int
		msg  string
	}{
		{
			desc: "validation error",
			err:  errors.Wrap(apiutil.ErrValidation, apiutil.ErrInvalidIndex),
			code: http.StatusBadRequest,
			msg:  apiutil.ErrValidation.Error(),
		},
		{
			desc: "unknown buffer",
			err:  errors.Wrap(dashboard.ErrNotFound, fmt.Errorf("buffer x")),
			code: http.StatusNotFound,
			msg:  dashboard.ErrNotFound.Error(),
		},
		{
			desc: "index out of range",
			err:  errors.Wrap(dashboard.ErrIndexOutOfRange, fmt.Errorf("index 9 of 3 samples")),
			code: http.StatusNotFound,
			msg:  dashboard.ErrIndexOutOfRange.Error(),
		},
		{
			desc: "unexpected error",
			err:  errors.New("boom"),
			code: http.StatusInternalServerError,
			msg:  "boom",
		},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		api.EncodeError(context.Background(), tc.err, rec)
		assert.Equal(t, tc.code, rec.Code, tc.desc)
		assert.Equal(t, api.ContentType, rec.Header().Get("Content-Type"), tc.desc)

		var body struct {
			Message string `json:"message"`
		}
		require.Nil(t, json.NewDecoder(rec.Body).Decode(&body), tc.desc)
		assert.Equal(t, tc.msg, body.Message, tc.desc)
	}
}
