package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/petly-community/petly/internal/ui/forms"
	"github.com/petly-community/petly/internal/ui/i18n"
	"github.com/petly-community/petly/internal/ui/types"
)

func newPetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pets",
		Short: "Browse and manage pets",
	}
	cmd.AddCommand(newPetsListCmd(), newPetsGetCmd(), newPetsCreateCmd(), newPetsUpdateCmd(), newPetsDeleteCmd())
	return cmd
}

func newPetsListCmd() *cobra.Command {
	var (
		search string
		status string
		mine   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pets, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, i18n.MsgLoadPetsFailed, func(ctx context.Context, a *app) error {
				petStatus, err := forms.ParsePetStatus(a.messages, status)
				if err != nil {
					return err
				}

				if mine {
					if err := a.requireSession(ctx); err != nil {
						return err
					}
				}

				pets, err := a.client.ListPets(ctx)
				if err != nil {
					return err
				}
				if mine {
					pets = types.OwnedBy(pets, a.store.User().ID)
				}

				printPets(a.stdout, a.messages, types.FilterPets(pets, search, petStatus))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "match the name, species, breed or owner (accents are ignored)")
	cmd.Flags().StringVar(&status, "status", "", "AVAILABLE, ADOPTED, LOST or FOUND")
	cmd.Flags().BoolVar(&mine, "mine", false, "only the pets registered by the logged in user")
	return cmd
}

func newPetsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show a pet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, i18n.MsgLoadPetFailed, func(ctx context.Context, a *app) error {
				petID, err := parseID(a.messages, args[0])
				if err != nil {
					return err
				}
				pet, err := a.client.GetPet(ctx, petID)
				if err != nil {
					return err
				}
				return printJSON(a.stdout, pet)
			})
		},
	}
}

// petFlags are shared by create and update
type petFlags struct {
	name, species, breed, description, status, sex, photoURL string
	age                                                      int
}

func (f *petFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "pet name")
	cmd.Flags().StringVar(&f.species, "species", "", "species, e.g. Cachorro")
	cmd.Flags().StringVar(&f.breed, "breed", "", "breed")
	cmd.Flags().IntVar(&f.age, "age", 0, "age in years")
	cmd.Flags().StringVar(&f.description, "description", "", "description")
	cmd.Flags().StringVar(&f.status, "status", "", "AVAILABLE, ADOPTED, LOST or FOUND")
	cmd.Flags().StringVar(&f.sex, "sex", "", "sex")
	cmd.Flags().StringVar(&f.photoURL, "photo-url", "", "photo URL")
}

func newPetsCreateCmd() *cobra.Command {
	var flags petFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a pet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, i18n.MsgCreatePetFailed, func(ctx context.Context, a *app) error {
				if err := a.requireSession(ctx); err != nil {
					return err
				}

				form := forms.PetForm{
					Name:        flags.name,
					Species:     flags.species,
					Breed:       flags.breed,
					Description: flags.description,
					Status:      flags.status,
					Sex:         flags.sex,
					PhotoURL:    flags.photoURL,
				}
				if cmd.Flags().Changed("age") {
					form.Age = &flags.age
				}

				payload, err := form.Payload(a.messages)
				if err != nil {
					return err
				}
				pet, err := a.client.CreatePet(ctx, a.store.Token(), payload)
				if err != nil {
					return err
				}
				return printFeedback(a.stdout, a.messages.Get(i18n.MsgPetCreated), pet)
			})
		},
	}

	flags.register(cmd)
	return cmd
}

func newPetsUpdateCmd() *cobra.Command {
	var flags petFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update the given fields of a pet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, i18n.MsgUpdatePetFailed, func(ctx context.Context, a *app) error {
				petID, err := parseID(a.messages, args[0])
				if err != nil {
					return err
				}
				if err := a.requireSession(ctx); err != nil {
					return err
				}

				changed := func(name string, value *string) *string {
					if cmd.Flags().Changed(name) {
						return value
					}
					return nil
				}
				payload := types.UpdatePetPayload{
					Name:        changed("name", &flags.name),
					Species:     changed("species", &flags.species),
					Breed:       changed("breed", &flags.breed),
					Description: changed("description", &flags.description),
					Sex:         changed("sex", &flags.sex),
					PhotoURL:    changed("photo-url", &flags.photoURL),
				}
				if cmd.Flags().Changed("age") {
					payload.Age = &flags.age
				}
				if cmd.Flags().Changed("status") {
					status, err := forms.ParsePetStatus(a.messages, flags.status)
					if err != nil {
						return err
					}
					payload.Status = &status
				}

				pet, err := a.client.UpdatePet(ctx, a.store.Token(), petID, payload)
				if err != nil {
					return err
				}
				return printFeedback(a.stdout, a.messages.Get(i18n.MsgPetUpdated), pet)
			})
		},
	}

	flags.register(cmd)
	return cmd
}

func newPetsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Remove a pet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, i18n.MsgDeletePetFailed, func(ctx context.Context, a *app) error {
				petID, err := parseID(a.messages, args[0])
				if err != nil {
					return err
				}
				if err := a.requireSession(ctx); err != nil {
					return err
				}
				if _, err := a.client.DeletePet(ctx, a.store.Token(), petID); err != nil {
					return err
				}
				return printFeedback(a.stdout, a.messages.Get(i18n.MsgPetDeleted), nil)
			})
		},
	}
}
