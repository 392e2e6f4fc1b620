package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/abdidvp/rulecheck/internal/domain"
)

const (
	opExtract  = "extract rules"
	opValidate = "validate dataset"

	// fileField is the multipart field both services read the upload from.
	fileField = "file"
)

// Client implements domain.RuleExtractor and domain.DatasetValidator over
// HTTP. It never retries.
type Client struct {
	http         *resty.Client
	extractPath  string
	validatePath string
}

// New creates a Client for the endpoint and paths in cfg.
func New(cfg domain.ClientConfig) *Client {
	cfg = cfg.WithDefaults()
	http := resty.New().
		SetBaseURL(cfg.Endpoint).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)
	if t := cfg.RequestTimeout(); t > 0 {
		http.SetTimeout(t)
	}
	return &Client{
		http:         http,
		extractPath:  cfg.ExtractPath,
		validatePath: cfg.ValidatePath,
	}
}

// ExtractRules uploads a document and returns the rule strings in order.
// The body must be an object whose "rules" field is an array of strings.
func (c *Client) ExtractRules(ctx context.Context, file domain.UploadSelection) ([]string, error) {
	body, err := c.upload(ctx, opExtract, c.extractPath, file)
	if err != nil {
		return nil, err
	}
	return decodeRules(body)
}

// ValidateDataset uploads a dataset and returns the raw per-row results.
// A missing or non-array "results" field yields a response with nil Results.
func (c *Client) ValidateDataset(ctx context.Context, file domain.UploadSelection) (*domain.ValidationResponse, error) {
	body, err := c.upload(ctx, opValidate, c.validatePath, file)
	if err != nil {
		return nil, err
	}
	return decodeValidation(body)
}

func (c *Client) upload(ctx context.Context, op, path string, file domain.UploadSelection) ([]byte, error) {
	f, err := os.Open(file.Path)
	if err != nil {
		return nil, &domain.RemoteError{Kind: domain.RemoteTransport, Op: op, Err: fmt.Errorf("opening upload: %w", err)}
	}
	defer f.Close()

	contentType := file.MIMEType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetMultipartField(fileField, file.Name, contentType, f).
		Post(path)
	if err != nil {
		return nil, &domain.RemoteError{Kind: domain.RemoteTransport, Op: op, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &domain.RemoteError{Kind: domain.RemoteStatus, Op: op, StatusCode: resp.StatusCode()}
	}
	return resp.Body(), nil
}

func decodeRules(body []byte) ([]string, error) {
	root, err := parseObject(opExtract, body)
	if err != nil {
		return nil, err
	}

	field := root.Get("rules")
	if !field.IsArray() {
		return nil, malformed(opExtract, errors.New(`response has no "rules" array`))
	}

	items := field.Array()
	rules := make([]string, 0, len(items))
	for i, item := range items {
		if item.Type != gjson.String {
			return nil, malformed(opExtract, fmt.Errorf("rule %d is not a string", i))
		}
		rules = append(rules, item.String())
	}
	return rules, nil
}

func decodeValidation(body []byte) (*domain.ValidationResponse, error) {
	root, err := parseObject(opValidate, body)
	if err != nil {
		return nil, err
	}

	resp := &domain.ValidationResponse{}
	if name := root.Get("filename"); name.Type == gjson.String {
		resp.Filename = name.String()
	}
	if n := root.Get("row_count"); n.Type == gjson.Number {
		count := int(n.Int())
		resp.RowCount = &count
	}

	results := root.Get("results")
	if !results.IsArray() {
		return resp, nil
	}

	items := results.Array()
	resp.Results = make([]domain.RawRow, 0, len(items))
	for _, item := range items {
		resp.Results = append(resp.Results, decodeRow(item))
	}
	return resp, nil
}

// decodeRow keeps numbers as json.Number so identifiers reach the
// normalizer exactly as sent. Non-object items become empty rows so that
// no row is dropped.
func decodeRow(item gjson.Result) domain.RawRow {
	if !item.IsObject() {
		return domain.RawRow{}
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(item.Raw)))
	dec.UseNumber()
	var row domain.RawRow
	if err := dec.Decode(&row); err != nil || row == nil {
		return domain.RawRow{}
	}
	return row
}

func parseObject(op string, body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, malformed(op, errors.New("response body is not valid JSON"))
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return gjson.Result{}, malformed(op, errors.New("response body is not a JSON object"))
	}
	return root, nil
}

func malformed(op string, err error) *domain.RemoteError {
	return &domain.RemoteError{Kind: domain.RemoteMalformed, Op: op, Err: err}
}
