// cmd/payment-reminder/send.go
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"payment-reminder/internal/common/errors"
	spr "payment-reminder/internal/functions/send-payment-reminder"
)

func newSendCmd(configPath *string) *cobra.Command {
	var req spr.ReminderRequest

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a single payment reminder and print the result as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, zapLog, log, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer zapLog.Sync()

			deps, err := buildDependencies(cmd.Context(), cfg, zapLog, log)
			if err != nil {
				zapLog.Error("dependency setup failed", zap.Error(err))
				return err
			}
			defer deps.Close()

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			out, err := deps.service.Execute(cmd.Context(), &req)
			if err != nil {
				_ = enc.Encode(errors.ErrorResponse{Error: errors.PublicMessage(err)})
				return fmt.Errorf("send reminder: %w", err)
			}
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVar(&req.MemberID, "member-id", "", "member identifier")
	cmd.Flags().StringVar(&req.MemberName, "member-name", "", "member display name")
	cmd.Flags().StringVar(&req.MemberEmail, "member-email", "", "recipient address")
	cmd.Flags().StringVar(&req.PaymentStatus, "payment-status", string(spr.StatusPending), "Pending, Overdue or Invalid")
	_ = cmd.MarkFlagRequired("member-email")
	return cmd
}
