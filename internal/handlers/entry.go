package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"calboard/internal/appinfo"
	"calboard/pkg/utils"
)

// dateLayout matches the en-US locale string the frontend already renders,
// e.g. "3/14/2026, 9:05:00 PM".
const dateLayout = "1/2/2006, 3:04:05 PM"

const msgNameAndCalories = "Name and calories required"

var errNotWholeNumber = errors.New("calories must be a whole number")

type EntryRequest struct {
	Name     string          `json:"name"`
	Calories json.RawMessage `json:"calories"`
	Proof    *string         `json:"proof"`
	Date     string          `json:"date"`
}

type EntryResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// AddEntry stores one calorie log.
// POST /api/entry
func (h *Handler) AddEntry(w http.ResponseWriter, r *http.Request) {
	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.WriteError(w, http.StatusRequestEntityTooLarge, utils.ErrRequestBodyTooLarge, "Request body too large.")
			return
		}
		utils.WriteError(w, http.StatusBadRequest, utils.ErrRequestBadRequest, "Invalid request body")
		return
	}

	calories, truthy, err := parseCalories(req.Calories)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, utils.ErrRequestInvalid, err.Error())
		return
	}

	// Both fields are checked for truthiness: an empty name or a numeric
	// calorie count of 0 counts as missing.
	if req.Name == "" || !truthy {
		utils.WriteError(w, http.StatusBadRequest, utils.ErrValidationMissingField, msgNameAndCalories)
		return
	}

	date := req.Date
	if date == "" {
		date = h.now().Format(dateLayout)
	}

	id, err := h.store.InsertLog(storageContext(r), req.Name, calories, req.Proof, date)
	if err != nil {
		writeStorageError(w, err)
		return
	}
	appinfo.AddEntry()

	utils.WriteJSON(w, http.StatusOK, EntryResponse{ID: id, Message: "Entry added"})
}

// parseCalories accepts a JSON number or a numeric string. truthy follows the
// loose presence check clients rely on: an absent value, null, "" and the
// number 0 are falsy, while the string "0" is not.
func parseCalories(raw json.RawMessage) (value int64, truthy bool, err error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false, nil
	}

	text := string(raw)
	quoted := raw[0] == '"'
	if quoted {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, false, errNotWholeNumber
		}
		if text == "" {
			return 0, false, nil
		}
		text = strings.TrimSpace(text)
	}

	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n, quoted || n != 0, nil
	}

	// 500.0 and 5e2 are still whole numbers.
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) || math.Abs(f) >= 1<<63 {
		return 0, false, errNotWholeNumber
	}
	return int64(f), quoted || f != 0, nil
}
