package ledger

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/myrjola/jurassictravel/internal/errors"
	"github.com/myrjola/jurassictravel/internal/models"
)

func printBookings(out io.Writer, bookings []models.Booking) error {
	if len(bookings) == 0 {
		_, err := fmt.Fprintln(out, "no bookings")
		return err
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0) //nolint:mnd // column padding.
	_, _ = fmt.Fprintln(w, "ID\tREF\tTOUR\tPASSENGER\tDATE\tSEAT\tGATE\tPRICE")
	for _, b := range bookings {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t$%d\n",
			b.ID, b.Reference(), b.Tour, b.Name, b.Date, b.Seat(), b.Gate(), b.Price)
	}
	return errors.Wrap(w.Flush(), "flush")
}
