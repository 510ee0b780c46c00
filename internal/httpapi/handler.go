// Package httpapi exposes the codec over HTTP.
package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/paraglidehq/basen"
	"github.com/paraglidehq/basen/internal/logging"
	"github.com/paraglidehq/basen/shortid"
)

// Handler serves encode and decode requests and issues IDs. Requests
// without an alphabet query parameter use the configured one.
type Handler struct {
	alphabet *basen.Alphabet
	ids      *shortid.Issuer
}

func NewHandler(alphabet *basen.Alphabet, ids *shortid.Issuer) *Handler {
	return &Handler{alphabet: alphabet, ids: ids}
}

// EncodeResult is the payload of an encode reply.
type EncodeResult struct {
	Value    int64  `json:"value"`
	Encoded  string `json:"encoded"`
	Alphabet string `json:"alphabet"`
}

// DecodeResult is the payload of a decode reply.
type DecodeResult struct {
	Encoded  string `json:"encoded"`
	Value    int64  `json:"value"`
	Alphabet string `json:"alphabet"`
}

// IssueResult is the payload of an ID issue reply.
type IssueResult struct {
	IDs    []string       `json:"ids"`
	Format shortid.Format `json:"format"`
}

// ResolveResult is the payload of an ID resolve reply.
type ResolveResult struct {
	ID    string `json:"id"`
	Value int64  `json:"value"`
}

// NewRouter builds the gin engine with recovery, request logging, health
// check and API routes.
func NewRouter(h *Handler, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes registers all routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/encode/:value", h.Encode)
		api.GET("/decode/:text", h.Decode)

		ids := api.Group("/ids")
		{
			ids.POST("", h.IssueIDs)
			ids.GET("/:id", h.ResolveID)
		}
	}
}

// Encode renders the path value in the requested alphabet.
func (h *Handler) Encode(c *gin.Context) {
	value, err := strconv.ParseInt(c.Param("value"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, CodeBadRequest, "value must be a 64-bit integer")
		return
	}
	a, err := h.alphabetFor(c)
	if err != nil {
		h.codecError(c, err)
		return
	}
	success(c, EncodeResult{Value: value, Encoded: a.Encode(value), Alphabet: a.String()})
}

// Decode parses the path text in the requested alphabet.
func (h *Handler) Decode(c *gin.Context) {
	text := c.Param("text")
	a, err := h.alphabetFor(c)
	if err != nil {
		h.codecError(c, err)
		return
	}
	value, err := a.Decode(text)
	if err != nil {
		h.codecError(c, err)
		return
	}
	success(c, DecodeResult{Encoded: text, Value: value, Alphabet: a.String()})
}

// IssueIDs hands out ?count= IDs (default 1) from the sequence.
func (h *Handler) IssueIDs(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "1"))
	if err != nil || count < 1 || count > shortid.MaxBatch {
		fail(c, http.StatusBadRequest, CodeBadRequest,
			"count must be an integer between 1 and "+strconv.Itoa(shortid.MaxBatch))
		return
	}
	ids, err := h.ids.GenerateBatch(count)
	if err != nil {
		if errors.Is(err, shortid.ErrExhausted) {
			logging.Ctx(c.Request.Context()).Error().Err(err).Msg("id sequence exhausted")
			fail(c, http.StatusServiceUnavailable, CodeExhausted, err.Error())
			return
		}
		h.codecError(c, err)
		return
	}
	format := h.ids.Codec().Format
	if format == "" {
		format = shortid.DefaultFormat
	}
	success(c, IssueResult{IDs: ids, Format: format})
}

// ResolveID maps an issued ID back to its sequence value.
func (h *Handler) ResolveID(c *gin.Context) {
	s := c.Param("id")
	id, err := h.ids.Parse(s)
	if err != nil {
		h.codecError(c, err)
		return
	}
	success(c, ResolveResult{ID: s, Value: id.Int64()})
}

func (h *Handler) alphabetFor(c *gin.Context) (*basen.Alphabet, error) {
	symbols, ok := c.GetQuery("alphabet")
	if !ok {
		return h.alphabet, nil
	}
	return basen.Lookup(symbols)
}

func (h *Handler) codecError(c *gin.Context, err error) {
	l := logging.Ctx(c.Request.Context())
	switch {
	case errors.Is(err, basen.ErrInvalidSymbol):
		fail(c, http.StatusBadRequest, CodeInvalidSymbol, err.Error())
	case errors.Is(err, basen.ErrInvalidAlphabet):
		fail(c, http.StatusBadRequest, CodeInvalidAlphabet, err.Error())
	case errors.Is(err, basen.ErrEmptyInput):
		fail(c, http.StatusBadRequest, CodeEmptyInput, err.Error())
	case errors.Is(err, basen.ErrOverflow):
		fail(c, http.StatusBadRequest, CodeOverflow, err.Error())
	default:
		l.Error().Err(err).Msg("codec failed")
		fail(c, http.StatusInternalServerError, CodeInternal, "internal error")
		return
	}
	l.Debug().Err(err).Msg("rejected codec input")
}
