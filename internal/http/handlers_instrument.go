package http

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"nestegg/internal/core"
)

// instrumentRequest is the wire form of both entry modes. Mode "calculated"
// (the default) derives maturity value and interest from the terms; mode
// "manual" takes them from the payload.
type instrumentRequest struct {
	Mode                 string  `json:"mode"`
	Name                 string  `json:"name"`
	Kind                 string  `json:"kind"`
	Principal            float64 `json:"principal"`
	AnnualRate           float64 `json:"annual_rate"`
	StartDate            string  `json:"start_date"`
	MaturityDate         string  `json:"maturity_date"`
	CompoundingFrequency int     `json:"compounding_frequency"`
	MonthlyContribution  float64 `json:"monthly_contribution"`
	HasPayout            bool    `json:"has_payout"`
	PayoutFrequency      int     `json:"payout_frequency"`
	MaturityValue        float64 `json:"maturity_value"`
	InterestEarned       float64 `json:"interest_earned"`
}

func (p instrumentRequest) toInput() (core.InstrumentInput, error) {
	start, err := core.ParseDate(p.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date: %v", core.ErrValidation, err)
	}
	maturity, err := core.ParseDate(p.MaturityDate)
	if err != nil {
		return nil, fmt.Errorf("%w: maturity_date: %v", core.ErrValidation, err)
	}

	switch p.Mode {
	case "", "calculated":
		return core.CalculatedInput{
			Name:                 p.Name,
			Kind:                 core.Kind(p.Kind),
			Principal:            p.Principal,
			AnnualRate:           p.AnnualRate,
			StartDate:            start,
			MaturityDate:         maturity,
			CompoundingFrequency: p.CompoundingFrequency,
			MonthlyContribution:  p.MonthlyContribution,
			HasPayout:            p.HasPayout,
			PayoutFrequency:      p.PayoutFrequency,
		}, nil
	case "manual":
		return core.ManualInput{
			Name:                 p.Name,
			Kind:                 core.Kind(p.Kind),
			Principal:            p.Principal,
			AnnualRate:           p.AnnualRate,
			StartDate:            start,
			MaturityDate:         maturity,
			CompoundingFrequency: p.CompoundingFrequency,
			MonthlyContribution:  p.MonthlyContribution,
			HasPayout:            p.HasPayout,
			PayoutFrequency:      p.PayoutFrequency,
			MaturityValue:        p.MaturityValue,
			InterestEarned:       p.InterestEarned,
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown entry mode %q", core.ErrValidation, p.Mode)
	}
}

type instrumentResponse struct {
	ID                   int64   `json:"id"`
	Name                 string  `json:"name"`
	Kind                 string  `json:"kind"`
	Principal            float64 `json:"principal"`
	AnnualRate           float64 `json:"annual_rate"`
	StartDate            string  `json:"start_date"`
	MaturityDate         string  `json:"maturity_date"`
	CompoundingFrequency int     `json:"compounding_frequency"`
	MonthlyContribution  float64 `json:"monthly_contribution"`
	HasPayout            bool    `json:"has_payout"`
	PayoutFrequency      int     `json:"payout_frequency"`
	TotalContributions   float64 `json:"total_contributions"`
	MaturityValue        float64 `json:"maturity_value"`
	InterestEarned       float64 `json:"interest_earned"`
	State                string  `json:"state"`
}

func toInstrumentResponse(in core.Instrument, today core.Date) instrumentResponse {
	return instrumentResponse{
		ID:                   in.ID,
		Name:                 in.Name,
		Kind:                 string(in.Kind),
		Principal:            in.Principal,
		AnnualRate:           in.AnnualRate,
		StartDate:            in.StartDate.String(),
		MaturityDate:         in.MaturityDate.String(),
		CompoundingFrequency: in.CompoundingFrequency,
		MonthlyContribution:  in.MonthlyContribution,
		HasPayout:            in.HasPayout,
		PayoutFrequency:      in.PayoutFrequency,
		TotalContributions:   in.TotalContributions,
		MaturityValue:        in.MaturityValue,
		InterestEarned:       in.InterestEarned,
		State:                string(in.State(today)),
	}
}

func (s *Server) handleListInstruments(w http.ResponseWriter, r *http.Request) {
	insts, err := s.instruments.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	today := core.Today()
	out := make([]instrumentResponse, 0, len(insts))
	for _, in := range insts {
		out = append(out, toInstrumentResponse(in, today))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateInstrument(w http.ResponseWriter, r *http.Request) {
	var payload instrumentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(w, r, "invalid JSON payload")
		return
	}
	input, err := payload.toInput()
	if err != nil {
		writeError(w, r, err)
		return
	}
	in, err := s.instruments.Create(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toInstrumentResponse(in, core.Today()))
}

func (s *Server) handleGetInstrument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	in, err := s.instruments.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toInstrumentResponse(in, core.Today()))
}

func (s *Server) handleUpdateInstrument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload instrumentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBadRequest(w, r, "invalid JSON payload")
		return
	}
	input, err := payload.toInput()
	if err != nil {
		writeError(w, r, err)
		return
	}
	in, err := s.instruments.Update(r.Context(), id, input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toInstrumentResponse(in, core.Today()))
}

func (s *Server) handleDeleteInstrument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.instruments.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleExportInstruments serializes the portfolio as JSON (default) or CSV.
func (s *Server) handleExportInstruments(w http.ResponseWriter, r *http.Request) {
	insts, err := s.instruments.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	format := r.URL.Query().Get("format")
	switch format {
	case "", "json":
		today := core.Today()
		out := make([]instrumentResponse, 0, len(insts))
		for _, in := range insts {
			out = append(out, toInstrumentResponse(in, today))
		}
		w.Header().Set("Content-Disposition", `attachment; filename="instruments.json"`)
		writeJSON(w, http.StatusOK, out)
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="instruments.csv"`)
		cw := csv.NewWriter(w)
		_ = cw.Write([]string{
			"name", "kind", "principal", "annual_rate", "start_date", "maturity_date",
			"compounding_frequency", "monthly_contribution", "has_payout", "payout_frequency",
			"total_contributions", "maturity_value", "interest_earned",
		})
		for _, in := range insts {
			_ = cw.Write([]string{
				in.Name,
				string(in.Kind),
				strconv.FormatFloat(in.Principal, 'f', -1, 64),
				strconv.FormatFloat(in.AnnualRate, 'f', -1, 64),
				in.StartDate.String(),
				in.MaturityDate.String(),
				strconv.Itoa(in.CompoundingFrequency),
				strconv.FormatFloat(in.MonthlyContribution, 'f', -1, 64),
				strconv.FormatBool(in.HasPayout),
				strconv.Itoa(in.PayoutFrequency),
				strconv.FormatFloat(in.TotalContributions, 'f', 2, 64),
				strconv.FormatFloat(in.MaturityValue, 'f', 2, 64),
				strconv.FormatFloat(in.InterestEarned, 'f', 2, 64),
			})
		}
		cw.Flush()
	default:
		writeBadRequest(w, r, "unknown export format: "+format)
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeBadRequest(w, r, "invalid instrument id")
		return 0, false
	}
	return id, true
}
