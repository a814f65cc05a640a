package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"plantchatapi/pkg/apierrors"
)

// PlantDescriptor holds the connection parameters for one plant database.
// Descriptors are loaded once at startup and never change afterwards; a
// credential change requires a process restart.
type PlantDescriptor struct {
	PlantKey string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

// DSN assembles the MySQL connection string for this descriptor.
func (d PlantDescriptor) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Name,
	)
}

// PlantRegistry maps plant keys to their database descriptors. It is built
// exactly once at startup and is read-only afterwards, so concurrent reads
// need no synchronization.
type PlantRegistry struct {
	plants map[string]PlantDescriptor
}

// NewPlantRegistry builds a registry from already-resolved descriptors.
// Keys are normalized to upper case.
func NewPlantRegistry(descriptors []PlantDescriptor) *PlantRegistry {
	plants := make(map[string]PlantDescriptor, len(descriptors))
	for _, d := range descriptors {
		plants[strings.ToUpper(d.PlantKey)] = d
	}
	return &PlantRegistry{plants: plants}
}

// LoadPlantRegistry scans the environment for one credential group per
// declared plant key: {KEY}_USER, {KEY}_PASSWORD, {KEY}_HOST, {KEY}_PORT,
// {KEY}_NAME. A declared plant with any field missing is a startup error,
// never a request-time one.
func LoadPlantRegistry(plantKeys []string) (*PlantRegistry, error) {
	descriptors := make([]PlantDescriptor, 0, len(plantKeys))
	for _, key := range plantKeys {
		key = strings.ToUpper(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		desc, err := loadPlantDescriptor(key)
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, desc)
	}
	return NewPlantRegistry(descriptors), nil
}

func loadPlantDescriptor(key string) (PlantDescriptor, error) {
	var missing []string
	lookup := func(field string) string {
		val := os.Getenv(key + "_" + field)
		if val == "" {
			missing = append(missing, key+"_"+field)
		}
		return val
	}

	desc := PlantDescriptor{
		PlantKey: key,
		User:     lookup("USER"),
		Password: lookup("PASSWORD"),
		Host:     lookup("HOST"),
		Name:     lookup("NAME"),
	}
	portStr := lookup("PORT")
	if len(missing) > 0 {
		return PlantDescriptor{}, fmt.Errorf("plant %s configuration incomplete, missing: %s",
			key, strings.Join(missing, ", "))
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return PlantDescriptor{}, fmt.Errorf("plant %s configuration invalid: %s_PORT=%q is not a number",
			key, key, portStr)
	}
	desc.Port = port
	return desc, nil
}

// Resolve maps a plant identifier, as presented in a request header, to its
// descriptor. An unknown identifier means "no such plant exists" and is
// reported as NotFound, distinct from an authorization failure.
func (r *PlantRegistry) Resolve(plantID string) (PlantDescriptor, error) {
	desc, ok := r.plants[strings.ToUpper(strings.TrimSpace(plantID))]
	if !ok {
		return PlantDescriptor{}, apierrors.New(apierrors.NotFound,
			"registry.Resolve", "unknown plant %q", plantID)
	}
	return desc, nil
}

// Keys returns the registered plant keys in sorted order.
func (r *PlantRegistry) Keys() []string {
	keys := make([]string, 0, len(r.plants))
	for k := range r.plants {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of registered plants.
func (r *PlantRegistry) Len() int {
	return len(r.plants)
}
