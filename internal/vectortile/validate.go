package vectortile

import (
	"errors"
	"fmt"

	"github.com/paulmach/protoscan"
)

// Field numbers from the vector tile protobuf schema.
const (
	tileLayers = 3

	layerName     = 1
	layerFeatures = 2
	layerKeys     = 3
	layerValues   = 4

	featureTags     = 2
	featureType     = 3
	featureGeometry = 4
)

const (
	geomPoint      = 1
	geomLineString = 2
	geomPolygon    = 3
)

const (
	cmdMoveTo    = 1
	cmdLineTo    = 2
	cmdClosePath = 7
)

// validate checks the parts of the schema the decoder tolerates: tag indices
// must address existing keys and values, and geometry command sequences must
// match the declared geometry type.
func validate(data []byte) error {
	msg := protoscan.New(data)

	var (
		layer *protoscan.Message
		err   error
	)
	for msg.Next() {
		if msg.FieldNumber() != tileLayers {
			msg.Skip()
			continue
		}
		layer, err = msg.Message(layer)
		if err != nil {
			return err
		}
		if err := validateLayer(layer); err != nil {
			return err
		}
	}
	return msg.Err()
}

func validateLayer(msg *protoscan.Message) error {
	var (
		name         string
		keys, values int
		features     [][]byte
	)
	for msg.Next() {
		switch msg.FieldNumber() {
		case layerName:
			s, err := msg.String()
			if err != nil {
				return err
			}
			name = s
		case layerFeatures:
			data, err := msg.MessageData()
			if err != nil {
				return err
			}
			features = append(features, data)
		case layerKeys:
			keys++
			msg.Skip()
		case layerValues:
			values++
			msg.Skip()
		default:
			msg.Skip()
		}
	}
	if err := msg.Err(); err != nil {
		return err
	}

	for i, data := range features {
		if err := validateFeature(protoscan.New(data), keys, values); err != nil {
			return fmt.Errorf("layer %q feature %d: %w", name, i, err)
		}
	}
	return nil
}

func validateFeature(msg *protoscan.Message, keys, values int) error {
	var (
		geomType       int32
		tags, geometry []uint32
		err            error
	)
	for msg.Next() {
		switch msg.FieldNumber() {
		case featureTags:
			tags, err = msg.RepeatedUint32(tags)
		case featureType:
			geomType, err = msg.Int32()
		case featureGeometry:
			geometry, err = msg.RepeatedUint32(geometry)
		default:
			msg.Skip()
		}
		if err != nil {
			return err
		}
	}
	if err := msg.Err(); err != nil {
		return err
	}

	if len(tags)%2 != 0 {
		return fmt.Errorf("odd number of tags: %d", len(tags))
	}
	for i := 0; i < len(tags); i += 2 {
		if int(tags[i]) >= keys {
			return fmt.Errorf("key index %d out of range, layer has %d keys", tags[i], keys)
		}
		if int(tags[i+1]) >= values {
			return fmt.Errorf("value index %d out of range, layer has %d values", tags[i+1], values)
		}
	}

	return validateGeometry(geomType, geometry)
}

func validateGeometry(geomType int32, geometry []uint32) error {
	r := commandReader{data: geometry}

	switch geomType {
	case geomPoint:
		if err := r.expect(cmdMoveTo, false); err != nil {
			return err
		}
	case geomLineString:
		for first := true; first || !r.done(); first = false {
			if err := r.expectOne(cmdMoveTo); err != nil {
				return err
			}
			if err := r.expect(cmdLineTo, false); err != nil {
				return err
			}
		}
	case geomPolygon:
		for first := true; first || !r.done(); first = false {
			if err := r.expectOne(cmdMoveTo); err != nil {
				return err
			}
			if err := r.expect(cmdLineTo, false); err != nil {
				return err
			}
			if err := r.expectOne(cmdClosePath); err != nil {
				return err
			}
		}
	default:
		// unknown geometry types are rejected by the decoder itself
		return nil
	}

	if !r.done() {
		return fmt.Errorf("%d trailing geometry values", len(r.data))
	}
	return nil
}

var errMissingCommand = errors.New("geometry ends before the next command")

type commandReader struct {
	data []uint32
}

func (r *commandReader) done() bool {
	return len(r.data) == 0
}

func (r *commandReader) command() (id, count uint32, err error) {
	if r.done() {
		return 0, 0, errMissingCommand
	}
	v := r.data[0]
	r.data = r.data[1:]
	return v & 0x7, v >> 3, nil
}

// expect reads a command with the given id and a positive count, then skips
// its parameters. With one set the count must be exactly 1.
func (r *commandReader) expect(id uint32, one bool) error {
	got, count, err := r.command()
	if err != nil {
		return err
	}
	if got != id {
		return fmt.Errorf("command %d where %d was expected", got, id)
	}
	if count == 0 || (one && count != 1) {
		return fmt.Errorf("command %d has invalid count %d", id, count)
	}
	if id == cmdClosePath {
		return nil
	}

	n := 2 * uint64(count)
	if uint64(len(r.data)) < n {
		return fmt.Errorf("command %d needs %d parameters, %d left", id, n, len(r.data))
	}
	r.data = r.data[n:]
	return nil
}

func (r *commandReader) expectOne(id uint32) error {
	return r.expect(id, true)
}
