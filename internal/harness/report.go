package harness

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/shamaton/msgpack/v2"
	"gopkg.in/yaml.v3"
)

const (
	FormatJSON    = "json"
	FormatMsgPack = "msgpack"
	FormatYAML    = "yaml"
)

type Result struct {
	Name      string `json:"name" msgpack:"name" yaml:"name"`
	Group     string `json:"group,omitempty" msgpack:"group" yaml:"group,omitempty"`
	Kind      string `json:"kind" msgpack:"kind" yaml:"kind"`
	Check     string `json:"check" msgpack:"check" yaml:"check"`
	Passed    bool   `json:"passed" msgpack:"passed" yaml:"passed"`
	Message   string `json:"message,omitempty" msgpack:"message" yaml:"message,omitempty"`
	ElapsedUs int64  `json:"elapsedUs" msgpack:"elapsed_us" yaml:"elapsed_us"`
}

type Report struct {
	RunID     string    `json:"runId" msgpack:"run_id" yaml:"run_id"`
	Name      string    `json:"name" msgpack:"name" yaml:"name"`
	StartedAt time.Time `json:"startedAt" msgpack:"started_at" yaml:"started_at"`
	Passed    int       `json:"passed" msgpack:"passed" yaml:"passed"`
	Failed    int       `json:"failed" msgpack:"failed" yaml:"failed"`
	Results   []Result  `json:"results" msgpack:"results" yaml:"results"`
}

func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
	if res.Passed {
		r.Passed++
	} else {
		r.Failed++
	}
}

type Marshaler interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

type MsgPackMarshaler struct{}

func (m *MsgPackMarshaler) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}
func (m *MsgPackMarshaler) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

type JsonMarshaler struct{}

func (m *JsonMarshaler) Marshal(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
func (m *JsonMarshaler) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

type YamlMarshaler struct{}

func (m *YamlMarshaler) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}
func (m *YamlMarshaler) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

var marshalers = map[string]Marshaler{
	FormatJSON:    &JsonMarshaler{},
	FormatMsgPack: &MsgPackMarshaler{},
	FormatYAML:    &YamlMarshaler{},
}

func MarshalerFor(format string) (Marshaler, error) {
	m, ok := marshalers[format]
	if !ok {
		return nil, errors.Errorf("unknown report format %q", format)
	}
	return m, nil
}

// WriteReport 按 cfg.Format 编码报告，写入 cfg.Output，Output 为空时写入 stdout
func WriteReport(stdout io.Writer, cfg ReportConfig, rep *Report) error {
	m, err := MarshalerFor(cfg.Format)
	if err != nil {
		return err
	}
	data, err := m.Marshal(rep)
	if err != nil {
		return errors.Wrap(err, "encode report")
	}
	if cfg.Output == "" {
		_, err = stdout.Write(data)
		return errors.Wrap(err, "write report")
	}
	return errors.Wrap(os.WriteFile(cfg.Output, data, 0o644), "write report")
}
