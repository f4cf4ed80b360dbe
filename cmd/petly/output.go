package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/petly-community/petly/internal/ui/i18n"
	"github.com/petly-community/petly/internal/ui/types"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func id(n int64) string {
	return strconv.FormatInt(n, 10)
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("could not format output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// printFeedback prints the success message followed by the affected record, if any
func printFeedback(w io.Writer, message string, record any) error {
	if _, err := fmt.Fprintln(w, message); err != nil {
		return err
	}
	if record == nil {
		return nil
	}
	return printJSON(w, record)
}

func printPets(w io.Writer, messages *i18n.Messages, pets []types.Pet) {
	table := newTable(w, "ID", "Name", "Species", "Breed", "Age", "Status", "Owner")
	for _, pet := range pets {
		owner := id(pet.OwnerID)
		if pet.Owner != nil {
			owner = pet.Owner.Name
		}
		table.Append([]string{
			id(pet.ID),
			pet.Name,
			pet.Species,
			types.FormatOptional(pet.Breed),
			types.FormatOptionalInt(pet.Age),
			messages.StatusLabel(string(pet.Status)),
			owner,
		})
	}
	table.Render()
	fmt.Fprintln(w, types.FormatRecordsReturned(len(pets)))
}

func printEvents(w io.Writer, events []types.Event) {
	table := newTable(w, "ID", "Title", "Date", "Location", "Status")
	for _, event := range events {
		table.Append([]string{
			id(event.ID),
			event.Title,
			types.FormatDateTime(event.Date),
			event.Location,
			string(event.Status),
		})
	}
	table.Render()
	fmt.Fprintln(w, types.FormatRecordsReturned(len(events)))
}

func printAdoptions(w io.Writer, adoptions []types.AdoptionRequest) {
	table := newTable(w, "ID", "Pet", "User", "Status", "Created")
	for _, adoption := range adoptions {
		pet := "#" + id(adoption.PetID)
		if adoption.Pet != nil {
			pet = adoption.Pet.Name
		}
		user := "#" + id(adoption.UserID)
		if adoption.User != nil {
			user = adoption.User.Name
		}
		table.Append([]string{
			id(adoption.ID),
			pet,
			user,
			string(adoption.Status),
			types.FormatDateTime(adoption.CreatedAt),
		})
	}
	table.Render()
	fmt.Fprintln(w, types.FormatRecordsReturned(len(adoptions)))
}

func printReports(w io.Writer, reports []types.Report) {
	table := newTable(w, "ID", "Description", "Status", "Created")
	for _, report := range reports {
		table.Append([]string{
			id(report.ID),
			report.Description,
			string(report.Status),
			types.FormatDateTime(report.CreatedAt),
		})
	}
	table.Render()
	fmt.Fprintln(w, types.FormatRecordsReturned(len(reports)))
}

func printUsers(w io.Writer, users []types.User) {
	table := newTable(w, "ID", "Name", "Email", "Role", "Phone")
	for _, user := range users {
		table.Append([]string{
			id(user.ID),
			user.Name,
			user.Email,
			string(user.Role),
			types.FormatOptional(user.Phone),
		})
	}
	table.Render()
	fmt.Fprintln(w, types.FormatRecordsReturned(len(users)))
}
