package main

import (
	"fmt"

	"github.com/trezcool/letscatchup/core/wizard"
)

// addPin drives the registration flow end to end: profile form, geocoded
// placement, commit. The edit secret is printed once so it can be handed to
// the pin's owner.
func (cli *commandLine) addPin(name, schoolName, city, postalCode string) error {
	w, err := wizard.New().Open(schoolName)
	if err != nil {
		return err
	}

	w, err = w.SubmitProfile(wizard.Form{
		FullName:   name,
		SchoolName: schoolName,
		City:       city,
		PostalCode: postalCode,
	}, cli.resolver)
	if err != nil {
		return err
	}

	p, secret, _, err := w.Confirm(cli.pinSvc)
	if err != nil {
		return err
	}
	fmt.Printf("pin #%d placed for %s at (%f, %f)\n", p.ID, p.FullName, p.Latitude, p.Longitude)
	fmt.Printf("edit secret (shown once): %s\n", secret)
	return nil
}
