// Package org models an organisation chart as a composite: every Employee
// may have subordinates of the same type.
package org

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Employee is a node in the organisation tree.
type Employee struct {
	Name         string      `yaml:"name"`
	Dept         string      `yaml:"dept"`
	Salary       int         `yaml:"salary"`
	Subordinates []*Employee `yaml:"subordinates,omitempty"`
}

func NewEmployee(name, dept string, salary int) *Employee {
	return &Employee{Name: name, Dept: dept, Salary: salary}
}

// Add appends a direct subordinate.
func (e *Employee) Add(sub *Employee) {
	e.Subordinates = append(e.Subordinates, sub)
}

// Walk visits e and its subordinates depth first. depth is 0 for e.
func (e *Employee) Walk(fn func(emp *Employee, depth int)) {
	e.walk(fn, 0)
}

func (e *Employee) walk(fn func(*Employee, int), depth int) {
	fn(e, depth)
	for _, sub := range e.Subordinates {
		sub.walk(fn, depth+1)
	}
}

// TotalSalary sums the salaries of e and everyone below it.
func (e *Employee) TotalSalary() int {
	total := 0
	e.Walk(func(emp *Employee, _ int) { total += emp.Salary })
	return total
}

// String renders the tree, one employee per line, indented by depth.
func (e *Employee) String() string {
	var b strings.Builder
	e.Walk(func(emp *Employee, depth int) {
		fmt.Fprintf(&b, "%sEmployee: [name: %s, dept: %s, salary: %d]\n",
			strings.Repeat("  ", depth), emp.Name, emp.Dept, emp.Salary)
	})
	return b.String()
}

// Load reads an organisation tree from a YAML file.
func Load(path string) (*Employee, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading org chart: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes parses an organisation tree rooted at a single employee.
func LoadBytes(data []byte) (*Employee, error) {
	var root Employee
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing org chart YAML: %w", err)
	}
	if root.Name == "" {
		return nil, fmt.Errorf("org chart root has no name")
	}
	if err := checkSubordinates(&root); err != nil {
		return nil, err
	}
	return &root, nil
}

// checkSubordinates rejects null entries in a decoded subordinates list.
func checkSubordinates(parent *Employee) error {
	for _, sub := range parent.Subordinates {
		if sub == nil {
			return fmt.Errorf("org chart: employee under %q is empty", parent.Name)
		}
		if err := checkSubordinates(sub); err != nil {
			return err
		}
	}
	return nil
}

// DefaultChart returns a small sample organisation.
func DefaultChart() *Employee {
	ceo := NewEmployee("John", "CEO", 30000)

	headSales := NewEmployee("Robert", "Head Sales", 20000)
	headMarketing := NewEmployee("Michael", "Head Marketing", 20000)

	headSales.Add(NewEmployee("Richard", "Sales", 10000))
	headSales.Add(NewEmployee("Rob", "Sales", 10000))

	headMarketing.Add(NewEmployee("Laura", "Marketing", 10000))
	headMarketing.Add(NewEmployee("Bob", "Marketing", 10000))

	ceo.Add(headSales)
	ceo.Add(headMarketing)
	return ceo
}
