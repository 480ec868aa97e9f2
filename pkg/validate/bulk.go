package validate

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/logistics/internal/ports"
)

// InputFormat — формат файла с заказами для массовой загрузки.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"  // один объект или массив объектов
	FormatJSONL InputFormat = "jsonl" // по объекту на строку
)

const maxLineSize = 10 * 1024 * 1024

// Issue — отклонённая запись. Position — номер строки для JSONL, номер элемента для JSON (с 1).
type Issue struct {
	Position int    `json:"position"`
	Reason   string `json:"reason"`
}

// Report — итог проверки пачки заказов.
type Report struct {
	Valid   int     `json:"valid"`
	Invalid int     `json:"invalid"`
	Issues  []Issue `json:"issues,omitempty"`
}

func (r Report) String() string { return fmt.Sprintf("%d valid / %d invalid", r.Valid, r.Invalid) }

// DetectFormat — формат по расширению; неизвестное расширение считается JSON.
func DetectFormat(path string) InputFormat {
	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		return FormatJSONL
	}
	return FormatJSON
}

// ValidateFile — проверяет файл с заказами, валидные пишет в out каноническим JSONL.
func ValidateFile(ctx context.Context, validator ports.OrderValidator, path string, format InputFormat, out io.Writer) (Report, error) {
	if format == FormatAuto {
		format = DetectFormat(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return Report{}, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return ValidateStream(ctx, validator, file, format, out)
}

// ValidateStream — то же для произвольного reader'а. Невалидные записи не прерывают проверку,
// а попадают в Report.Issues; ошибка возвращается только при сбое чтения или записи.
func ValidateStream(ctx context.Context, validator ports.OrderValidator, in io.Reader, format InputFormat, out io.Writer) (Report, error) {
	b := &batch{ctx: ctx, validator: validator, out: out}

	var err error
	switch format {
	case FormatJSONL:
		err = b.lines(in)
	case FormatJSON, FormatAuto:
		err = b.document(in)
	default:
		err = fmt.Errorf("unsupported format: %s", format)
	}
	return b.report, err
}

type batch struct {
	ctx       context.Context
	validator ports.OrderValidator
	out       io.Writer
	report    Report
}

func (b *batch) lines(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for pos := 1; scanner.Scan(); pos++ {
		if err := b.ctx.Err(); err != nil {
			return err
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if err := b.item(pos, line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	return nil
}

func (b *batch) document(in io.Reader) error {
	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	raw = bytes.TrimSpace(raw)

	if !bytes.HasPrefix(raw, []byte("[")) {
		return b.item(1, raw)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		b.reject(0, fmt.Errorf("invalid json: %w", err))
		return nil
	}
	for i, it := range items {
		if err := b.ctx.Err(); err != nil {
			return err
		}
		if err := b.item(i+1, it); err != nil {
			return err
		}
	}
	return nil
}

// item — проверка одной записи; возвращает только ошибку записи в out.
func (b *batch) item(pos int, raw []byte) error {
	input, err := CreateOrderFromJSON(b.ctx, b.validator, raw)
	if err != nil {
		b.reject(pos, err)
		return nil
	}

	canonical, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if _, err := b.out.Write(append(canonical, '\n')); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	b.report.Valid++
	return nil
}

func (b *batch) reject(pos int, err error) {
	b.report.Invalid++
	reason := err.Error()
	if errors.Is(err, ErrInvalidInput) {
		reason = strings.TrimPrefix(reason, ErrInvalidInput.Error()+": ")
	}
	b.report.Issues = append(b.report.Issues, Issue{Position: pos, Reason: reason})
}
