package main

import (
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
)

type rosterStudent struct {
	Name    string
	Email   string
	Credits int
}

type skippedRow struct {
	Row    int
	Reason string
}

// parseRoster reads the header row to locate the name, email and optional
// credits columns, then returns one student per valid data row. Row numbers
// in skipped are 1-based like the spreadsheet.
func parseRoster(rows [][]string) ([]rosterStudent, []skippedRow, error) {
	if len(rows) == 0 {
		return nil, nil, errors.New("roster is empty")
	}

	nameCol, emailCol, creditsCol := -1, -1, -1
	for i, h := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name", "full name", "student name":
			nameCol = i
		case "email", "email address", "e-mail":
			emailCol = i
		case "credits", "classes":
			creditsCol = i
		}
	}
	if nameCol < 0 || emailCol < 0 {
		return nil, nil, errors.New("header row needs name and email columns")
	}

	var students []rosterStudent
	var skipped []skippedRow
	seen := make(map[string]bool)

	for i, row := range rows[1:] {
		rowNum := i + 2
		name := strings.TrimSpace(cell(row, nameCol))
		email := strings.ToLower(strings.TrimSpace(cell(row, emailCol)))

		if name == "" && email == "" {
			continue
		}
		if name == "" {
			skipped = append(skipped, skippedRow{rowNum, "missing name"})
			continue
		}
		if _, err := mail.ParseAddress(email); err != nil {
			skipped = append(skipped, skippedRow{rowNum, fmt.Sprintf("invalid email %q", email)})
			continue
		}
		if seen[email] {
			skipped = append(skipped, skippedRow{rowNum, "duplicate email " + email})
			continue
		}

		credits := 0
		if raw := strings.TrimSpace(cell(row, creditsCol)); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				skipped = append(skipped, skippedRow{rowNum, fmt.Sprintf("credits %q is not a whole number", raw)})
				continue
			}
			credits = n
		}

		seen[email] = true
		students = append(students, rosterStudent{Name: name, Email: email, Credits: credits})
	}
	return students, skipped, nil
}

// cell returns row[i], or "" when the row is short or i is negative.
// excelize trims trailing empty cells from each row.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
