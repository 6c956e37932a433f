package codec

import (
	"github.com/go-iso15118/hlc/pkg/bitstream"
	"github.com/go-iso15118/hlc/pkg/message"
)

// powerScale fixes the number of fractional decimal digits preserved when
// a float64 power/voltage/current field is carried as a scaled integer on
// the wire, mirroring the schema's explicit unit-and-multiplier encoding
// (spec §3 "energy numbers with explicit unit-and-multiplier").
const powerScale = 1000

func writeScaledFloat(bs *bitstream.Stream, v float64) error {
	scaled := int64(v * powerScale)
	return bs.WriteUnsignedVar(zigzag(scaled))
}

func readScaledFloat(bs *bitstream.Stream) (float64, error) {
	u, err := bs.ReadUnsignedVar()
	if err != nil {
		return 0, err
	}
	return float64(unzigzag(u)) / powerScale, nil
}

func zigzag(v int64) uint64   { return uint64((v << 1) ^ (v >> 63)) }
func unzigzag(u uint64) int64 { return int64(u>>1) ^ -int64(u&1) }

func writeHeader(bs *bitstream.Stream, h message.Header) error {
	if err := bs.WriteBytes(h.SessionID[:]); err != nil {
		return err
	}
	if err := bs.WriteUnsignedVar(uint64(h.Timestamp)); err != nil {
		return err
	}
	if err := bs.WritePresenceBit(h.Signature != nil); err != nil {
		return err
	}
	if h.Signature != nil {
		if err := bs.WriteUnsignedVar(uint64(len(h.Signature.SignedFragmentIDs))); err != nil {
			return err
		}
		for _, id := range h.Signature.SignedFragmentIDs {
			if err := bs.WriteString(id); err != nil {
				return err
			}
		}
		if err := bs.WriteUnsignedVar(uint64(len(h.Signature.Value))); err != nil {
			return err
		}
		if err := bs.WriteBytes(h.Signature.Value); err != nil {
			return err
		}
	}
	return nil
}

func readHeader(bs *bitstream.Stream) (message.Header, error) {
	var h message.Header
	sid, err := bs.ReadBytes(8)
	if err != nil {
		return h, err
	}
	copy(h.SessionID[:], sid)
	ts, err := bs.ReadUnsignedVar()
	if err != nil {
		return h, err
	}
	h.Timestamp = int64(ts)
	hasSig, err := bs.ReadPresenceBit()
	if err != nil {
		return h, err
	}
	if hasSig {
		sig := &message.Signature{}
		n, err := bs.ReadUnsignedVar()
		if err != nil {
			return h, err
		}
		for i := uint64(0); i < n; i++ {
			id, err := bs.ReadString()
			if err != nil {
				return h, err
			}
			sig.SignedFragmentIDs = append(sig.SignedFragmentIDs, id)
		}
		vlen, err := bs.ReadUnsignedVar()
		if err != nil {
			return h, err
		}
		val, err := bs.ReadBytes(int(vlen))
		if err != nil {
			return h, err
		}
		sig.Value = val
		h.Signature = sig
	}
	return h, nil
}

func writeResponseCode(bs *bitstream.Stream, c message.ResponseCode) error {
	return bs.WriteBits(8, uint32(c))
}

func readResponseCode(bs *bitstream.Stream) (message.ResponseCode, error) {
	v, err := bs.ReadBits(8)
	return message.ResponseCode(v), err
}

func writeOptionalString(bs *bitstream.Stream, v *string) error {
	if err := bs.WritePresenceBit(v != nil); err != nil {
		return err
	}
	if v != nil {
		return bs.WriteString(*v)
	}
	return nil
}

func readOptionalString(bs *bitstream.Stream) (*string, error) {
	present, err := bs.ReadPresenceBit()
	if err != nil || !present {
		return nil, err
	}
	s, err := bs.ReadString()
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func writeOptionalInt64(bs *bitstream.Stream, v *int64) error {
	if err := bs.WritePresenceBit(v != nil); err != nil {
		return err
	}
	if v != nil {
		return bs.WriteUnsignedVar(zigzag(*v))
	}
	return nil
}

func readOptionalInt64(bs *bitstream.Stream) (*int64, error) {
	present, err := bs.ReadPresenceBit()
	if err != nil || !present {
		return nil, err
	}
	u, err := bs.ReadUnsignedVar()
	if err != nil {
		return nil, err
	}
	v := unzigzag(u)
	return &v, nil
}

func writeBytesField(bs *bitstream.Stream, b []byte) error {
	if err := bs.WriteUnsignedVar(uint64(len(b))); err != nil {
		return err
	}
	return bs.WriteBytes(b)
}

func readBytesField(bs *bitstream.Stream) ([]byte, error) {
	n, err := bs.ReadUnsignedVar()
	if err != nil {
		return nil, err
	}
	return bs.ReadBytes(int(n))
}

func writeByteChainField(bs *bitstream.Stream, chain [][]byte) error {
	if err := bs.WriteUnsignedVar(uint64(len(chain))); err != nil {
		return err
	}
	for _, c := range chain {
		if err := writeBytesField(bs, c); err != nil {
			return err
		}
	}
	return nil
}

func readByteChainField(bs *bitstream.Stream) ([][]byte, error) {
	n, err := bs.ReadUnsignedVar()
	if err != nil {
		return nil, err
	}
	out := make([][]byte, 0, n)
	for i := uint64(0); i < n; i++ {
		b, err := readBytesField(bs)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func writeStringSlice(bs *bitstream.Stream, ss []string) error {
	if err := bs.WriteUnsignedVar(uint64(len(ss))); err != nil {
		return err
	}
	for _, s := range ss {
		if err := bs.WriteString(s); err != nil {
			return err
		}
	}
	return nil
}

func readStringSlice(bs *bitstream.Stream) ([]string, error) {
	n, err := bs.ReadUnsignedVar()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, n)
	for i := uint64(0); i < n; i++ {
		s, err := bs.ReadString()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func writeSchedules(bs *bitstream.Stream, schedules []message.ChargingSchedule) error {
	if err := bs.WriteUnsignedVar(uint64(len(schedules))); err != nil {
		return err
	}
	for _, sched := range schedules {
		if err := bs.WriteUnsignedVar(uint64(sched.ScheduleID)); err != nil {
			return err
		}
		if err := bs.WriteUnsignedVar(uint64(len(sched.Entries))); err != nil {
			return err
		}
		for _, e := range sched.Entries {
			if err := bs.WriteUnsignedVar(uint64(e.StartOffset)); err != nil {
				return err
			}
			if err := bs.WriteUnsignedVar(uint64(e.Duration)); err != nil {
				return err
			}
			if err := writeScaledFloat(bs, e.MaxPowerW); err != nil {
				return err
			}
		}
	}
	return nil
}

func readSchedules(bs *bitstream.Stream) ([]message.ChargingSchedule, error) {
	n, err := bs.ReadUnsignedVar()
	if err != nil {
		return nil, err
	}
	out := make([]message.ChargingSchedule, 0, n)
	for i := uint64(0); i < n; i++ {
		id, err := bs.ReadUnsignedVar()
		if err != nil {
			return nil, err
		}
		count, err := bs.ReadUnsignedVar()
		if err != nil {
			return nil, err
		}
		entries := make([]message.ScheduleEntry, 0, count)
		for j := uint64(0); j < count; j++ {
			start, err := bs.ReadUnsignedVar()
			if err != nil {
				return nil, err
			}
			dur, err := bs.ReadUnsignedVar()
			if err != nil {
				return nil, err
			}
			power, err := readScaledFloat(bs)
			if err != nil {
				return nil, err
			}
			entries = append(entries, message.ScheduleEntry{
				StartOffset: durationOf(start),
				Duration:    durationOf(dur),
				MaxPowerW:   power,
			})
		}
		out = append(out, message.ChargingSchedule{ScheduleID: int(id), Entries: entries})
	}
	return out, nil
}

func writeServices(bs *bitstream.Stream, services []message.Service) error {
	if err := bs.WriteUnsignedVar(uint64(len(services))); err != nil {
		return err
	}
	for _, s := range services {
		if err := bs.WriteUnsignedVar(uint64(s.ServiceID)); err != nil {
			return err
		}
		if err := bs.WriteString(s.ServiceName); err != nil {
			return err
		}
		if err := bs.WriteUnsignedVar(uint64(len(s.Modes))); err != nil {
			return err
		}
		for _, m := range s.Modes {
			if err := bs.WriteBits(4, uint32(m)); err != nil {
				return err
			}
		}
	}
	return nil
}

func readServices(bs *bitstream.Stream) ([]message.Service, error) {
	n, err := bs.ReadUnsignedVar()
	if err != nil {
		return nil, err
	}
	out := make([]message.Service, 0, n)
	for i := uint64(0); i < n; i++ {
		id, err := bs.ReadUnsignedVar()
		if err != nil {
			return nil, err
		}
		name, err := bs.ReadString()
		if err != nil {
			return nil, err
		}
		mc, err := bs.ReadUnsignedVar()
		if err != nil {
			return nil, err
		}
		modes := make([]message.EnergyTransferMode, 0, mc)
		for j := uint64(0); j < mc; j++ {
			m, err := bs.ReadBits(4)
			if err != nil {
				return nil, err
			}
			modes = append(modes, message.EnergyTransferMode(m))
		}
		out = append(out, message.Service{ServiceID: int(id), ServiceName: name, Modes: modes})
	}
	return out, nil
}

func writeStringMap(bs *bitstream.Stream, m map[string]string) error {
	if err := bs.WriteUnsignedVar(uint64(len(m))); err != nil {
		return err
	}
	for k, v := range m {
		if err := bs.WriteString(k); err != nil {
			return err
		}
		if err := bs.WriteString(v); err != nil {
			return err
		}
	}
	return nil
}

func readStringMap(bs *bitstream.Stream) (map[string]string, error) {
	n, err := bs.ReadUnsignedVar()
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, n)
	for i := uint64(0); i < n; i++ {
		k, err := bs.ReadString()
		if err != nil {
			return nil, err
		}
		v, err := bs.ReadString()
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}
