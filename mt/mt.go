// Package mt contains MTProto service schema constructors.
//
// Definitions follow mt.tl and are written in the style of generated
// code: one constructor per type with TypeID constant, Encode and
// Decode. The schema is fixed at build time and never mutated.
package mt

import "github.com/gramkit/gram/bin"

// TypesMap returns mapping from type ids to TL type names.
func TypesMap() map[uint32]string {
	return map[uint32]string{
		ReqPqMultiRequestTypeID:           "req_pq_multi",
		ResPQTypeID:                       "resPQ",
		PQInnerDataDCTypeID:               "p_q_inner_data_dc",
		ReqDHParamsRequestTypeID:          "req_DH_params",
		ServerDHParamsOkTypeID:            "server_DH_params_ok",
		ServerDHParamsFailTypeID:          "server_DH_params_fail",
		ServerDHInnerDataTypeID:           "server_DH_inner_data",
		ClientDHInnerDataTypeID:           "client_DH_inner_data",
		SetClientDHParamsRequestTypeID:    "set_client_DH_params",
		DHGenOkTypeID:                     "dh_gen_ok",
		DHGenRetryTypeID:                  "dh_gen_retry",
		DHGenFailTypeID:                   "dh_gen_fail",
		RPCResultTypeID:                   "rpc_result",
		RPCErrorTypeID:                    "rpc_error",
		PingRequestTypeID:                 "ping",
		PingDelayDisconnectRequestTypeID:  "ping_delay_disconnect",
		PongTypeID:                        "pong",
		NewSessionCreatedTypeID:           "new_session_created",
		MsgsAckTypeID:                     "msgs_ack",
		BadMsgNotificationTypeID:          "bad_msg_notification",
		BadServerSaltTypeID:               "bad_server_salt",
		MsgsStateReqTypeID:                "msgs_state_req",
		MsgsStateInfoTypeID:               "msgs_state_info",
		MsgsAllInfoTypeID:                 "msgs_all_info",
		MsgDetailedInfoTypeID:             "msg_detailed_info",
		MsgNewDetailedInfoTypeID:          "msg_new_detailed_info",
		MsgResendReqTypeID:                "msg_resend_req",
		GetFutureSaltsRequestTypeID:       "get_future_salts",
		FutureSaltsTypeID:                 "future_salts",
		DestroySessionRequestTypeID:       "destroy_session",
		DestroySessionOkTypeID:            "destroy_session_ok",
		DestroySessionNoneTypeID:          "destroy_session_none",
	}
}

// TypesConstructorMap returns mapping from type ids to constructors.
func TypesConstructorMap() map[uint32]func() bin.Object {
	return map[uint32]func() bin.Object{
		ResPQTypeID:              func() bin.Object { return &ResPQ{} },
		ServerDHParamsOkTypeID:   func() bin.Object { return &ServerDHParamsOk{} },
		ServerDHParamsFailTypeID: func() bin.Object { return &ServerDHParamsFail{} },
		DHGenOkTypeID:            func() bin.Object { return &DHGenOk{} },
		DHGenRetryTypeID:         func() bin.Object { return &DHGenRetry{} },
		DHGenFailTypeID:          func() bin.Object { return &DHGenFail{} },
		RPCErrorTypeID:           func() bin.Object { return &RPCError{} },
		PongTypeID:               func() bin.Object { return &Pong{} },
		NewSessionCreatedTypeID:  func() bin.Object { return &NewSessionCreated{} },
		MsgsAckTypeID:            func() bin.Object { return &MsgsAck{} },
		BadMsgNotificationTypeID: func() bin.Object { return &BadMsgNotification{} },
		BadServerSaltTypeID:      func() bin.Object { return &BadServerSalt{} },
		MsgsStateReqTypeID:       func() bin.Object { return &MsgsStateReq{} },
		MsgsStateInfoTypeID:      func() bin.Object { return &MsgsStateInfo{} },
		MsgsAllInfoTypeID:        func() bin.Object { return &MsgsAllInfo{} },
		MsgDetailedInfoTypeID:    func() bin.Object { return &MsgDetailedInfo{} },
		MsgNewDetailedInfoTypeID: func() bin.Object { return &MsgNewDetailedInfo{} },
		MsgResendReqTypeID:       func() bin.Object { return &MsgResendReq{} },
		FutureSaltsTypeID:        func() bin.Object { return &FutureSalts{} },
		DestroySessionOkTypeID:   func() bin.Object { return &DestroySessionOk{} },
		DestroySessionNoneTypeID: func() bin.Object { return &DestroySessionNone{} },
	}
}
