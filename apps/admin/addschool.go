package main

import (
	"fmt"

	"github.com/trezcool/letscatchup/core/school"
)

func (cli *commandLine) addSchool(name, logoURL string) error {
	ns := school.NewSchool{Name: name, LogoURL: logoURL}
	if err := ns.Validate(); err != nil {
		return err
	}

	s, err := cli.schoolSvc.Create(ns)
	if err != nil {
		return err
	}
	fmt.Printf("school %q registered with slug %q\n", s.Name, s.Slug)
	return nil
}
