package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tadreeb/academy/internal/app/models/dto"
	"github.com/tadreeb/academy/internal/pkg/i18n"
)

func TestI18nController(t *testing.T) {
	ctrl := NewI18nController(i18n.Default())
	r := newTestRouter()
	r.GET("/api/i18n", ctrl.Languages)
	r.GET("/api/i18n/:lang", ctrl.Dictionary)

	w := perform(r, http.MethodGet, "/api/i18n", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var langs struct {
		Data dto.LanguagesResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &langs))
	assert.Equal(t, "ar", langs.Data.Default)
	assert.Equal(t, []dto.LanguageInfo{{Lang: "ar", Dir: "rtl"}, {Lang: "en", Dir: "ltr"}}, langs.Data.Supported)

	w = perform(r, http.MethodGet, "/api/i18n/EN", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dict struct {
		Data dto.DictionaryResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dict))
	assert.Equal(t, "en", dict.Data.Lang)
	assert.Equal(t, "ltr", dict.Data.Dir)
	assert.Equal(t, "Home", dict.Data.Messages["nav.home"])

	w = perform(r, http.MethodGet, "/api/i18n/fr", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthController(t *testing.T) {
	for _, tt := range []struct {
		err  error
		want string
	}{
		{nil, `{"status":"ok","database":"ok"}`},
		{errors.New("connection refused"), `{"status":"ok","database":"down"}`},
	} {
		r := newTestRouter()
		r.GET("/api/health", NewHealthController(stubPinger{err: tt.err}, zerolog.Nop()).Health)

		w := perform(r, http.MethodGet, "/api/health", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, tt.want, w.Body.String())
	}
}
