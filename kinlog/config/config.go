// Package config loads a seed family from a YAML file, so a session
// can start from a known tree instead of an empty store
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wbrown/kinlog/kinlog"
)

// Family is the on-disk seed format:
//
//	people:
//	  - name: penny
//	    sex: female
//	parents:
//	  - parent: penny
//	    child: alice
type Family struct {
	People  []Person     `yaml:"people"`
	Parents []ParentEdge `yaml:"parents"`
}

// Person declares an individual, optionally with a sex
type Person struct {
	Name string `yaml:"name"`
	Sex  string `yaml:"sex"`
}

// ParentEdge declares one parent(parent, child) fact
type ParentEdge struct {
	Parent string `yaml:"parent"`
	Child  string `yaml:"child"`
}

// Load reads and validates a family file
func Load(path string) (*Family, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read family file: %w", err)
	}

	var fam Family
	if err := yaml.Unmarshal(data, &fam); err != nil {
		return nil, fmt.Errorf("parse family file: %w", err)
	}
	if err := fam.validate(); err != nil {
		return nil, err
	}
	return &fam, nil
}

func (f *Family) validate() error {
	for i, p := range f.People {
		if p.Name == "" {
			return fmt.Errorf("%w: person %d has no name", kinlog.ErrInvalidFact, i)
		}
		switch p.Sex {
		case "", "male", "female":
		default:
			return fmt.Errorf("%w: person %s has sex %q, want male or female",
				kinlog.ErrInvalidFact, p.Name, p.Sex)
		}
	}
	for i, e := range f.Parents {
		if e.Parent == "" || e.Child == "" {
			return fmt.Errorf("%w: parent edge %d is incomplete", kinlog.ErrInvalidFact, i)
		}
	}
	return nil
}

// Facts converts the seed to assertable base facts, people first
func (f *Family) Facts() []kinlog.Fact {
	var facts []kinlog.Fact
	for _, p := range f.People {
		switch p.Sex {
		case "male":
			facts = append(facts, kinlog.Male(kinlog.Atom(p.Name)))
		case "female":
			facts = append(facts, kinlog.Female(kinlog.Atom(p.Name)))
		}
	}
	for _, e := range f.Parents {
		facts = append(facts, kinlog.Parent(kinlog.Atom(e.Parent), kinlog.Atom(e.Child)))
	}
	return facts
}
