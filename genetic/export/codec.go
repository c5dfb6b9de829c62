package export

import (
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// Write encodes the report as TOML
func Write(w io.Writer, dto ReportDTO) error {
	enc := toml.NewEncoder(w)
	if err := enc.Encode(dto); err != nil {
		return errors.Wrap(err, "export: encode report")
	}
	return nil
}

// Read decodes a TOML report, rejecting unknown keys
func Read(r io.Reader) (ReportDTO, error) {
	var dto ReportDTO

	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&dto); err != nil {
		return dto, errors.Wrap(err, "export: decode report")
	}
	return dto, nil
}

// Marshal returns the TOML encoding of the report
func Marshal(dto ReportDTO) ([]byte, error) {
	data, err := toml.Marshal(dto)
	if err != nil {
		return nil, errors.Wrap(err, "export: marshal report")
	}
	return data, nil
}

// Unmarshal parses a TOML report
func Unmarshal(data []byte) (ReportDTO, error) {
	var dto ReportDTO
	if err := toml.Unmarshal(data, &dto); err != nil {
		return dto, errors.Wrap(err, "export: unmarshal report")
	}
	return dto, nil
}

// WriteBatch encodes a batch as TOML, one [[run]] table per report
func WriteBatch(w io.Writer, batch BatchDTO) error {
	if err := toml.NewEncoder(w).Encode(batch); err != nil {
		return errors.Wrap(err, "export: encode batch")
	}
	return nil
}

// ReadBatch decodes a TOML batch, rejecting unknown keys
func ReadBatch(r io.Reader) (BatchDTO, error) {
	var batch BatchDTO

	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&batch); err != nil {
		return batch, errors.Wrap(err, "export: decode batch")
	}
	return batch, nil
}
