package config

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/modern-go/reflect2"
	"github.com/pkg/errors"
)

// Bind fills a Config from the key/value pairs of an external configuration
// surface, on top of the defaults. Keys are the `dmem` tags of Config;
// numbers accept decimal, octal and 0x-prefixed hex.
func Bind(values map[string]string) (*Config, error) {
	c := Default()
	for k, v := range values {
		if err := c.Set(k, v); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Set assigns one configuration key. The key is resolved against the `dmem`
// struct tags, the value parsed according to the field's kind.
func (c *Config) Set(key, value string) error {
	st := reflect2.TypeOf(*c).(reflect2.StructType)
	t := st.Type1()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Tag.Get("dmem") != key {
			continue
		}
		return setField(st.FieldByName(f.Name), c, f.Type.Kind(), key, value)
	}
	return errors.Wrapf(ErrUnknownKey, "%q", key)
}

func setField(field reflect2.StructField, c *Config, kind reflect.Kind, key, value string) error {
	switch kind {
	case reflect.String:
		field.Set(c, &value)
	case reflect.Uint8:
		n, err := parseNum(value, 8)
		if err != nil {
			return errors.Wrapf(err, "config: %s", key)
		}
		v := uint8(n)
		field.Set(c, &v)
	case reflect.Uint32:
		n, err := parseNum(value, 32)
		if err != nil {
			return errors.Wrapf(err, "config: %s", key)
		}
		v := uint32(n)
		field.Set(c, &v)
	case reflect.Uint64:
		n, err := parseNum(value, 64)
		if err != nil {
			return errors.Wrapf(err, "config: %s", key)
		}
		field.Set(c, &n)
	case reflect.Slice:
		parts := strings.Fields(value)
		if len(parts) > MaxEmulatedAPs {
			return ErrEmuListTooLong
		}
		list := make([]uint64, 0, len(parts))
		for _, p := range parts {
			n, err := parseNum(p, 64)
			if err != nil {
				return errors.Wrapf(err, "config: %s", key)
			}
			list = append(list, n)
		}
		field.Set(c, &list)
	}
	return nil
}

func parseNum(s string, bits int) (uint64, error) {
	return strconv.ParseUint(s, 0, bits)
}
